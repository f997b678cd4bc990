package grid

// Scene is the rendering collaborator attached to a Grid. The grid never
// draws; it tells the scene what moved and what should be visible.
type Scene interface {
	// Place is called after an agent's position was integrated.
	Place(a *Agent)

	// ShowRange shows or hides an agent's claim range indicator.
	ShowRange(a *Agent, show bool)

	// ShowField shows or hides the marker field.
	ShowField(show bool)

	// Release frees everything the scene holds for the grid.
	Release()
}

type nopScene struct{}

func (nopScene) Place(*Agent)           {}
func (nopScene) ShowRange(*Agent, bool) {}
func (nopScene) ShowField(bool)         {}
func (nopScene) Release()               {}
