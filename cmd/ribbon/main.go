package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/fluidlogic/ribbon"
	"github.com/fluidlogic/ribbon/svg"
	"github.com/tdewolff/argp"
)

func main() {
	cmd := argp.New("Constant-width ribbon outlines for straight-segment SVG paths")
	cmd.AddCmd(&Offset{}, "offset", "Offset SVG path data into a ribbon outline")
	cmd.AddCmd(&Layers{}, "layers", "Report object node locations per SVG layer")
	cmd.Parse()
	cmd.PrintHelp()
}

// output opens filename for writing, with empty or - meaning stdout.
func output(filename string) (*os.File, func(), error) {
	if filename == "" || filename == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

type Offset struct {
	Data    string  `index:"0" desc:"SVG path data of the input polyline"`
	Width   float64 `short:"w" default:"10.0" desc:"Total ribbon width"`
	Fillet  float64 `short:"f" default:"0.6" desc:"Fillet radius as fraction of ribbon width (clamped to 0.5)"`
	Fill    string  `default:"#000000" desc:"Fill color of the output paths"`
	Rule    string  `default:"nonzero" desc:"Fill rule: nonzero or evenodd"`
	Output  string  `short:"o" desc:"Output SVG filename, default stdout"`
	Verbose bool    `short:"v" desc:"Log geometry fallbacks to stderr"`
}

func (cmd *Offset) Run() error {
	if cmd.Data == "" {
		return fmt.Errorf("must pass SVG path data")
	}
	if cmd.Verbose {
		ribbon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	p, err := ribbon.ParseSVGPath(cmd.Data)
	if err != nil {
		return err
	}
	pts, closed, err := p.Points()
	if err != nil {
		return err
	}

	opts := ribbon.DefaultOptions()
	opts.Width = cmd.Width
	opts.FilletFraction = math.Max(cmd.Fillet, 0.5)
	outer, inner, err := ribbon.Ribbon(pts, closed, opts)
	if err != nil {
		return err
	}

	f, done, err := output(cmd.Output)
	if err != nil {
		return err
	}
	defer done()

	bounds := outer.Bounds()
	if inner != nil {
		bounds = bounds.Add(inner.Bounds())
	}
	margin := opts.Width
	w := svg.New(f, bounds.X-margin, bounds.Y-margin, bounds.W+2.0*margin, bounds.H+2.0*margin)
	w.DrawPath(outer, cmd.Fill, cmd.Rule)
	if inner != nil {
		w.DrawPath(inner, cmd.Fill, cmd.Rule)
	}
	return w.Close()
}

type Layers struct {
	Input  string `index:"0" desc:"Input SVG filename"`
	Layers string `short:"l" default:"substrate" desc:"Comma-separated layer names, empty for all"`
	Output string `short:"o" desc:"Output XML filename, default stdout"`
}

func (cmd *Layers) Run() error {
	if cmd.Input == "" {
		return fmt.Errorf("must pass one SVG file")
	}
	f, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	var names []string
	if cmd.Layers != "" {
		names = strings.Split(cmd.Layers, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
	}
	parsed, err := svg.ParseLayers(f, names...)
	if err != nil {
		return err
	}

	out, done, err := output(cmd.Output)
	if err != nil {
		return err
	}
	defer done()
	return svg.WriteLayerReport(out, parsed)
}
