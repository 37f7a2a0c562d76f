// Package svg reads polylines and layer structure out of SVG documents and
// writes ribbon outlines back as SVG.
package svg

import (
	"io"
	"strconv"
	"strings"

	"github.com/fluidlogic/ribbon"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Object is one drawable element found in a layer.
type Object struct {
	ID     string
	Type   string
	Filled bool
	Nodes  []ribbon.Point
}

// Layer is a named Inkscape layer and the objects it contains, in document order.
type Layer struct {
	Name    string
	Objects []Object
}

type svgParser struct {
	z   *parse.Input
	err error
}

func (svg *svgParser) parsePoints(v string) []float64 {
	v = strings.ReplaceAll(v, "\n", ",")
	v = strings.ReplaceAll(v, "\t", ",")
	v = strings.ReplaceAll(v, " ", ",")

	vals := []float64{}
	for _, item := range strings.Split(v, ",") {
		if 0 < len(item) {
			val, err := strconv.ParseFloat(item, 64)
			if err != nil && svg.err == nil {
				svg.err = parse.NewErrorLexer(svg.z, "bad number array: %v: %s", err, v)
			}
			vals = append(vals, val)
		}
	}
	return vals
}

func (svg *svgParser) parseTransform(v string) ribbon.Matrix {
	i, j := 0, 0
	m := ribbon.Identity
	var fun string
	for i < len(v) {
		if v[i] == '(' {
			fun = strings.ToLower(strings.TrimSpace(v[j:i]))
			j = i + 1
		} else if v[i] == ')' {
			d := svg.parsePoints(v[j:i])
			switch fun {
			case "matrix":
				if len(d) != 6 {
					svg.err = parse.NewErrorLexer(svg.z, "bad transform matrix")
				} else {
					m = m.Mul(ribbon.Matrix{{d[0], d[2], d[4]}, {d[1], d[3], d[5]}})
				}
			case "translate":
				if len(d) != 1 && len(d) != 2 {
					svg.err = parse.NewErrorLexer(svg.z, "bad transform translate")
				} else if len(d) == 1 {
					m = m.Translate(d[0], 0.0)
				} else {
					m = m.Translate(d[0], d[1])
				}
			case "scale":
				if len(d) != 1 && len(d) != 2 {
					svg.err = parse.NewErrorLexer(svg.z, "bad transform scale")
				} else if len(d) == 1 {
					m = m.Scale(d[0], d[0])
				} else {
					m = m.Scale(d[0], d[1])
				}
			case "rotate":
				if len(d) != 1 && len(d) != 3 {
					svg.err = parse.NewErrorLexer(svg.z, "bad transform rotate")
				} else if len(d) == 1 {
					m = m.Rotate(d[0])
				} else {
					m = m.RotateAbout(d[0], d[1], d[2])
				}
			}
			j = i + 1
		}
		i++
	}
	return m
}

func (svg *svgParser) attrFloat(attrs map[string]string, key string) float64 {
	v, ok := attrs[key]
	if !ok {
		return 0.0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil && svg.err == nil {
		svg.err = parse.NewErrorLexer(svg.z, "bad number for %s: %v", key, err)
	}
	return f
}

// filled reports whether an element paints its interior, from the style
// attribute's fill property or the fill presentation attribute.
func filled(attrs map[string]string) bool {
	fill, ok := "", false
	if style, okStyle := attrs["style"]; okStyle {
		for _, decl := range strings.Split(style, ";") {
			if k, v, okDecl := strings.Cut(decl, ":"); okDecl && strings.TrimSpace(k) == "fill" {
				fill, ok = strings.TrimSpace(v), true
			}
		}
	}
	if !ok {
		fill, ok = attrs["fill"]
	}
	if !ok {
		return false
	}
	fill = strings.ToLower(strings.TrimSpace(fill))
	return fill != "none" && fill != ""
}

// pathNodes returns the node locations of path data: anchor points and, for
// Bezier segments, their control points.
func pathNodes(p *ribbon.Path) []ribbon.Point {
	nodes := []ribbon.Point{}
	s := p.Scanner()
	for s.Scan() {
		switch s.Cmd() {
		case ribbon.MoveToCmd, ribbon.LineToCmd:
			nodes = append(nodes, s.End())
		case ribbon.QuadToCmd:
			nodes = append(nodes, s.CP1(), s.End())
		case ribbon.CubeToCmd:
			nodes = append(nodes, s.CP1(), s.CP2(), s.End())
		}
	}
	return nodes
}

// nodeLocations extracts the node locations of a shape element in its local
// coordinates, nil if the tag is not a shape.
func (svg *svgParser) nodeLocations(tag string, attrs map[string]string) []ribbon.Point {
	switch tag {
	case "path":
		p, err := ribbon.ParseSVGPath(attrs["d"])
		if err != nil {
			if svg.err == nil {
				svg.err = parse.NewErrorLexer(svg.z, "bad path data: %v", err)
			}
			return nil
		}
		return pathNodes(p)
	case "rect":
		x := svg.attrFloat(attrs, "x")
		y := svg.attrFloat(attrs, "y")
		w := svg.attrFloat(attrs, "width")
		h := svg.attrFloat(attrs, "height")
		return []ribbon.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	case "circle":
		cx := svg.attrFloat(attrs, "cx")
		cy := svg.attrFloat(attrs, "cy")
		r := svg.attrFloat(attrs, "r")
		return []ribbon.Point{{X: cx + r, Y: cy}, {X: cx, Y: cy + r}, {X: cx - r, Y: cy}, {X: cx, Y: cy - r}}
	case "ellipse":
		cx := svg.attrFloat(attrs, "cx")
		cy := svg.attrFloat(attrs, "cy")
		rx := svg.attrFloat(attrs, "rx")
		ry := svg.attrFloat(attrs, "ry")
		return []ribbon.Point{{X: cx + rx, Y: cy}, {X: cx, Y: cy + ry}, {X: cx - rx, Y: cy}, {X: cx, Y: cy - ry}}
	case "line":
		return []ribbon.Point{
			{X: svg.attrFloat(attrs, "x1"), Y: svg.attrFloat(attrs, "y1")},
			{X: svg.attrFloat(attrs, "x2"), Y: svg.attrFloat(attrs, "y2")},
		}
	case "polyline", "polygon":
		vals := svg.parsePoints(attrs["points"])
		pts := make([]ribbon.Point, 0, len(vals)/2)
		for i := 0; i+1 < len(vals); i += 2 {
			pts = append(pts, ribbon.Point{X: vals[i], Y: vals[i+1]})
		}
		return pts
	}
	return nil
}

type frame struct {
	tag   string
	ctm   ribbon.Matrix
	layer *Layer
}

// ParseLayers scans an SVG document for Inkscape layers and returns the node
// locations of the shapes they contain, with each group's transform attribute
// composed down the tree. When names is empty all layers are returned,
// otherwise only the named ones, in the order given.
func ParseLayers(r io.Reader, names ...string) ([]Layer, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	svg := svgParser{z: z}
	l := xml.NewLexer(z)
	stack := []frame{{ctm: ribbon.Identity}}
	layers := []*Layer{}
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, l.Err()
			}
			if svg.err != nil {
				return nil, svg.err
			}
			return orderLayers(layers, names), nil
		case xml.StartTagToken:
			tag := string(data[1:])
			if i := strings.IndexByte(tag, ':'); i != -1 && strings.HasPrefix(tag, "svg:") {
				tag = tag[i+1:]
			}

			attrs := map[string]string{}
			var tt2 xml.TokenType
			for {
				tt2, _ = l.Next()
				if tt2 != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if 2 <= len(val) {
					val = val[1 : len(val)-1]
				}
				attrs[string(l.Text())] = string(val)
			}
			void := tt2 == xml.StartTagCloseVoidToken

			parent := stack[len(stack)-1]
			cur := frame{tag: tag, ctm: parent.ctm, layer: parent.layer}
			if v, ok := attrs["transform"]; ok {
				cur.ctm = cur.ctm.Mul(svg.parseTransform(v))
			}
			if tag == "g" && attrs["inkscape:groupmode"] == "layer" {
				name := attrs["inkscape:label"]
				if name == "" {
					name = attrs["label"]
				}
				layer := &Layer{Name: name}
				layers = append(layers, layer)
				cur.layer = layer
			}

			if cur.layer != nil {
				if nodes := svg.nodeLocations(tag, attrs); 0 < len(nodes) {
					for i, node := range nodes {
						nodes[i] = cur.ctm.Dot(node)
					}
					cur.layer.Objects = append(cur.layer.Objects, Object{
						ID:     attrs["id"],
						Type:   tag,
						Filled: filled(attrs),
						Nodes:  nodes,
					})
				}
			}
			if !void {
				stack = append(stack, cur)
			}
		case xml.EndTagToken:
			if 1 < len(stack) {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// orderLayers filters parsed layers by the requested names, keeping document
// order when no names were given.
func orderLayers(layers []*Layer, names []string) []Layer {
	if len(names) == 0 {
		out := make([]Layer, 0, len(layers))
		for _, layer := range layers {
			out = append(out, *layer)
		}
		return out
	}
	out := []Layer{}
	for _, name := range names {
		for _, layer := range layers {
			if layer.Name == name {
				out = append(out, *layer)
				break
			}
		}
	}
	return out
}
