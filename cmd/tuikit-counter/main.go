// Command tuikit-counter is a minimal demo: a single persistent
// counter displayed next to a button that increments it. The counter's
// value survives every frame's reconstruction of the Counter view
// value because it is keyed by structural identity, not by the Go
// value.
package main

import (
	"fmt"
	"os"

	"github.com/tuikit-go/tuikit"
	"github.com/tuikit-go/tuikit/config"
	"github.com/tuikit-go/tuikit/render"
	"github.com/tuikit-go/tuikit/widget"
)

// Counter is the application's root view. A new Counter{} is
// constructed by Program on every frame; its body descends under a
// stable identity, so the state cell it hydrates persists regardless.
type Counter struct{}

func (Counter) Tag() string { return "Counter" }

func (Counter) Body(ctx render.Context) render.View {
	cell := ctx.State.Hydrate(ctx.Identity, 0, func() any { return 0 })
	count := cell.Get().(int)

	return widget.Section{
		ID: "counter",
		Inner: widget.HStack{
			Spacing: 1,
			Children: []widget.Child{
				{View: widget.Text{Content: fmt.Sprintf("%d", count)}, Min: 4},
				{View: widget.Button{
					Label: "+",
					OnPress: func() {
						ctx.State.Set(cell, count+1)
					},
				}, Min: 5},
			},
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tuikit-counter: load config:", err)
		os.Exit(1)
	}

	p := tuikit.New(func() render.View { return Counter{} }, cfg)
	if err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tuikit-counter:", err)
		os.Exit(1)
	}
}
