package view

import (
	"errors"
	"time"

	termbox "github.com/nsf/termbox-go"

	"github.com/borkshop/markerfield/internal/point"
)

// View implements a terminal user interaction on top of termbox: it polls key
// input, pumps the client on a fixed tick, and renders the client into a
// full-screen grid.
type View struct {
	// Interval is the time between client ticks; 0 disables ticking.
	Interval time.Duration

	// Paused suspends client ticks while true; the client still renders.
	Paused bool

	grid   Grid
	events chan termbox.Event
	done   chan struct{}
}

var errViewState = errors.New("invalid view state")

// Run a Client under this view until it returns ErrStop, or the user quits
// with Ctrl-C, returning any other error from the client or terminal.
func (v *View) Run(client Client) (rerr error) {
	if v.events != nil {
		return errViewState
	}
	if err := termbox.Init(); err != nil {
		return err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)

	v.events = make(chan termbox.Event)
	v.done = make(chan struct{})
	go v.pollEvents()
	defer func() {
		close(v.done)
		termbox.Close()
		v.events = nil
		if cerr := client.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	err := v.runClient(client)
	if err == ErrStop {
		err = nil
	}
	return err
}

func (v *View) pollEvents() {
	for {
		ev := termbox.PollEvent()
		select {
		case v.events <- ev:
		case <-v.done:
			return
		}
	}
}

func (v *View) runClient(client Client) error {
	var tick <-chan time.Time
	if v.Interval > 0 {
		ticker := time.NewTicker(v.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	if err := v.render(client); err != nil {
		return err
	}
	for {
		select {
		case ev := <-v.events:
			switch ev.Type {
			case termbox.EventError:
				return ev.Err
			case termbox.EventResize:
			case termbox.EventKey:
				if ev.Key == termbox.KeyCtrlC {
					return ErrStop
				}
				if err := client.HandleKey(KeyEvent{Ch: ev.Ch, Key: ev.Key, Mod: ev.Mod}); err != nil {
					return err
				}
			default:
				continue
			}

		case <-tick:
			if v.Paused {
				continue
			}
			if err := client.Tick(); err != nil {
				return err
			}
		}
		if err := v.render(client); err != nil {
			return err
		}
	}
}

func (v *View) render(client Client) error {
	w, h := termbox.Size()
	v.grid.Resize(point.Pt(w, h))
	if err := client.Render(v.grid); err != nil {
		return err
	}
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return err
	}
	copy(termbox.CellBuffer(), v.grid.Data)
	return termbox.Flush()
}
