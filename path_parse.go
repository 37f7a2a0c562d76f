package ribbon

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int, error) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, i, fmt.Errorf("expected number at position %d", i)
	}
	return f, i + n, nil
}

// ParseSVGPath parses SVG path data into a path. Elliptical arc commands have
// no Path representation and yield an error.
func ParseSVGPath(sPath string) (*Path, error) {
	path := []byte(sPath)
	p := &Path{}

	var prevCmd byte
	cpx, cpy := 0.0, 0.0 // previous control point for S/T

	i := 0
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}
		cmd := prevCmd
		if 'A' <= path[i] {
			cmd = path[i]
			i++
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			// coordinates may repeat a command implicitly, but not
			// before the first command or after a closepath
			return nil, fmt.Errorf("expected path command at position %d", i)
		}
		nums := func(k int) ([]float64, error) {
			f := make([]float64, k)
			for j := 0; j < k; j++ {
				var err error
				var n int
				f[j], n, err = parseNum(path[i:])
				i += n
				if err != nil {
					return nil, err
				}
			}
			return f, nil
		}

		pos := p.Pos()
		x, y := pos.X, pos.Y
		switch cmd {
		case 'M', 'm':
			f, err := nums(2)
			if err != nil {
				return nil, err
			}
			if cmd == 'm' {
				f[0] += x
				f[1] += y
			}
			p.MoveTo(f[0], f[1])
			// subsequent implicit coordinate pairs are lines
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			f, err := nums(2)
			if err != nil {
				return nil, err
			}
			if cmd == 'l' {
				f[0] += x
				f[1] += y
			}
			p.LineTo(f[0], f[1])
		case 'H', 'h':
			f, err := nums(1)
			if err != nil {
				return nil, err
			}
			if cmd == 'h' {
				f[0] += x
			}
			p.LineTo(f[0], y)
		case 'V', 'v':
			f, err := nums(1)
			if err != nil {
				return nil, err
			}
			if cmd == 'v' {
				f[0] += y
			}
			p.LineTo(x, f[0])
		case 'C', 'c':
			f, err := nums(6)
			if err != nil {
				return nil, err
			}
			if cmd == 'c' {
				f[0] += x
				f[1] += y
				f[2] += x
				f[3] += y
				f[4] += x
				f[5] += y
			}
			p.CubeTo(f[0], f[1], f[2], f[3], f[4], f[5])
			cpx, cpy = f[2], f[3]
		case 'S', 's':
			f, err := nums(4)
			if err != nil {
				return nil, err
			}
			if cmd == 's' {
				f[0] += x
				f[1] += y
				f[2] += x
				f[3] += y
			}
			x1, y1 := x, y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				x1, y1 = 2.0*x-cpx, 2.0*y-cpy
			}
			p.CubeTo(x1, y1, f[0], f[1], f[2], f[3])
			cpx, cpy = f[0], f[1]
		case 'Q', 'q':
			f, err := nums(4)
			if err != nil {
				return nil, err
			}
			if cmd == 'q' {
				f[0] += x
				f[1] += y
				f[2] += x
				f[3] += y
			}
			p.QuadTo(f[0], f[1], f[2], f[3])
			cpx, cpy = f[0], f[1]
		case 'T', 't':
			f, err := nums(2)
			if err != nil {
				return nil, err
			}
			if cmd == 't' {
				f[0] += x
				f[1] += y
			}
			x1, y1 := x, y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				x1, y1 = 2.0*x-cpx, 2.0*y-cpy
			}
			p.QuadTo(x1, y1, f[0], f[1])
			cpx, cpy = x1, y1
		case 'A', 'a':
			return nil, fmt.Errorf("elliptical arc command '%c' at position %d is not supported", cmd, i-1)
		default:
			return nil, fmt.Errorf("unknown path command '%c' at position %d", cmd, i)
		}
		prevCmd = cmd
	}
	return p, nil
}

// MustParseSVGPath parses SVG path data and panics on failure.
func MustParseSVGPath(sPath string) *Path {
	p, err := ParseSVGPath(sPath)
	if err != nil {
		panic(err)
	}
	return p
}
