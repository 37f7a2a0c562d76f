package svg

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fluidlogic/ribbon"
	"github.com/tdewolff/minify/v2"
)

type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", ribbon.Precision, float64(f))
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), ribbon.Precision))
}

// Writer writes paths into an SVG document.
type Writer struct {
	w   io.Writer
	err error
}

// New starts an SVG document with the given viewport. Call Close to end it.
func New(w io.Writer, x, y, width, height float64) *Writer {
	svg := &Writer{w: w}
	_, svg.err = fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%v" height="%v" viewBox="%v %v %v %v">`,
		num(width), num(height), num(x), num(y), num(width), num(height))
	return svg
}

// DrawPath writes a path element filled with the given color, "none" to only
// keep the geometry. The fill rule defaults to nonzero; pass "evenodd" to let
// an overlapping ribbon cancel itself out.
func (svg *Writer) DrawPath(p *ribbon.Path, fill, fillRule string) {
	if svg.err != nil {
		return
	}
	if fillRule != "" && fillRule != "nonzero" {
		_, svg.err = fmt.Fprintf(svg.w, `<path d="%s" fill="%s" fill-rule="%s"/>`, p, fill, fillRule)
		return
	}
	_, svg.err = fmt.Fprintf(svg.w, `<path d="%s" fill="%s"/>`, p, fill)
}

// Close ends the SVG document and returns the first error encountered while
// writing.
func (svg *Writer) Close() error {
	if svg.err != nil {
		return svg.err
	}
	_, svg.err = fmt.Fprint(svg.w, `</svg>`)
	return svg.err
}
