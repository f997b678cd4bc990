package hud_test

import (
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/borkshop/markerfield/internal/point"
	"github.com/borkshop/markerfield/internal/view"
	. "github.com/borkshop/markerfield/internal/view/hud"
)

func TestHUD(t *testing.T) {
	world := view.MakeGrid(point.Pt(4, 1))
	world.WriteString(0, 0, "wxyz")

	h := HUD{World: world}
	h.Logs.Init(10)
	h.Logs.Log("a")
	h.Logs.Log("b")
	h.HeaderF("banner")
	h.HeaderF(">t=%d", 1)
	h.AddFooter(view.RenderString("foot"), true)

	g := view.MakeGrid(point.Pt(20, 5))
	h.Render(g)
	assert.Equal(t, []string{
		"banner...........t=1",
		"a...................",
		"b.......wxyz........",
		"....................",
		"................foot",
	}, g.Lines('.'))
}

func TestHUD_Crowded(t *testing.T) {
	var h HUD
	h.HeaderF("left one")
	h.HeaderF("left two")
	h.HeaderF(">r1")
	h.HeaderF(">r2")
	h.HeaderF("much too wide to fit anywhere")

	g := view.MakeGrid(point.Pt(14, 3))
	h.Render(g)
	assert.Equal(t, []string{
		"left one.r2.r1",
		"left two......",
		"..............",
	}, g.Lines('.'))
}

func TestLogs(t *testing.T) {
	var logs Logs
	logs.Init(3)
	for i := 1; i <= 5; i++ {
		logs.Log("line %d", i)
	}
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, logs.Buffer)

	wanted, needed := logs.RenderSize()
	assert.Equal(t, point.Pt(6, 3), wanted)
	assert.Equal(t, point.Pt(1, 1), needed)

	g := view.MakeGrid(point.Pt(6, 2))
	logs.Render(g)
	assert.Equal(t, []string{"line 4", "line 5"}, g.Lines('.'))
}

func TestLogs_Write(t *testing.T) {
	var logs Logs
	logs.Init(10)
	logger := log.New(&logs, "hud: ", 0)
	logger.Printf("hello %s", "there")
	fmt.Fprint(&logs, "one\ntwo\nthree")
	assert.Equal(t, []string{"hud: hello there", "one", "two", "three"}, logs.Buffer)
}
