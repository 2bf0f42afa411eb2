// Command zellodemo drives the text engine from the command line: it
// types the given text into a widget, walks a few editing events, and
// prints the resulting state and caret geometry.
package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/futurepaul/zello"
	"github.com/futurepaul/zello/text"
)

func main() {
	var (
		input    = flag.String("text", "Hello, 世界!", "text to type into the widget")
		fontSize = flag.Float64("size", 16, "font size in logical pixels")
		scale    = flag.Float64("scale", 2, "device scale factor")
		style    = flag.String("style", "", "optional TOML style file")
	)
	flag.Parse()

	provider := text.NewGoTextProvider()
	if _, err := provider.RegisterFont(goregular.TTF); err != nil {
		log.Fatalf("register font: %v", err)
	}

	opts := []zello.EngineOption{}
	if *style != "" {
		ts, err := zello.LoadStylesFromFile(*style)
		if err != nil {
			log.Fatalf("load style: %v", err)
		}
		opts = append(opts, zello.WithTextStyle(ts))
	}
	eng := zello.NewEngine(provider, opts...)

	const widget = 1
	for _, r := range *input {
		eng.ApplyEvent(widget, zello.InsertCharEvent(r))
	}

	w, h, err := eng.MeasureText(eng.Text(widget), *fontSize, 0, *scale)
	if err != nil {
		log.Fatalf("measure: %v", err)
	}
	x, err := eng.CaretX(widget, *fontSize, *scale)
	if err != nil {
		log.Fatalf("caret: %v", err)
	}

	fmt.Printf("content: %q\n", eng.Text(widget))
	fmt.Printf("extent:  %.2f x %.2f logical px\n", w, h)
	fmt.Printf("caret:   offset %d at x=%.2f\n", eng.Cursor(widget), x)

	// Select the last word with shift-left presses and show the range.
	for i := 0; i < 3; i++ {
		eng.ApplyEvent(widget, zello.MoveCursorEvent(zello.DirLeft, true))
	}
	if start, end, ok := eng.Selection(widget); ok {
		fmt.Printf("select:  bytes %d..%d = %q\n", start, end, eng.SelectionText(widget))
	}
}
