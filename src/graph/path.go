package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segment is one path command. Args holds 2 numbers for M/L, 4 for Q and none for Z.
type Segment struct {
	Cmd  byte
	Args []float64
}

// Path builds vector path data in SVG syntax.
type Path struct {
	segs []Segment
}

func (p *Path) MoveTo(x, y float64) { p.segs = append(p.segs, Segment{'M', []float64{x, y}}) }
func (p *Path) LineTo(x, y float64) { p.segs = append(p.segs, Segment{'L', []float64{x, y}}) }

// QuadTo adds a quadratic curve through control point (cx,cy) ending at (x,y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.segs = append(p.segs, Segment{'Q', []float64{cx, cy, x, y}})
}

func (p *Path) Close() { p.segs = append(p.segs, Segment{Cmd: 'Z'}) }

// Segments returns the recorded commands.
func (p *Path) Segments() []Segment { return p.segs }

// String renders the path as "M x y L x y ... Z"; an empty path renders as "".
func (p *Path) String() string {
	var b strings.Builder
	for i, s := range p.segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(s.Cmd)
		for _, a := range s.Args {
			b.WriteByte(' ')
			b.WriteString(FormatCoord(a))
		}
	}
	return b.String()
}

// FormatCoord rounds to 2 decimals and prints the shortest representation ("10", "12.5").
func FormatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ParsePath reads path data produced by Path.String. Only M, L, Q and Z are understood.
func ParsePath(d string) ([]Segment, error) {
	fields := strings.Fields(d)
	var out []Segment
	for i := 0; i < len(fields); {
		tok := fields[i]
		if len(tok) != 1 {
			return nil, fmt.Errorf("unexpected token %q at %d", tok, i)
		}
		var n int
		switch tok[0] {
		case 'M', 'L':
			n = 2
		case 'Q':
			n = 4
		case 'Z':
			n = 0
		default:
			return nil, fmt.Errorf("unsupported path command %q", tok)
		}
		if i+n >= len(fields) {
			return nil, fmt.Errorf("command %q at %d needs %d arguments", tok, i, n)
		}
		seg := Segment{Cmd: tok[0]}
		for j := 1; j <= n; j++ {
			v, err := strconv.ParseFloat(fields[i+j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q: %w", fields[i+j], err)
			}
			seg.Args = append(seg.Args, v)
		}
		out = append(out, seg)
		i += n + 1
	}
	return out, nil
}

// GenerateLinePath moves to the first scaled point and draws a line to every following one.
// Empty input yields "".
func GenerateLinePath(data []DataPoint, xScale, yScale ScaleFunc) string {
	if len(data) == 0 {
		return ""
	}
	p := linePath(data, xScale, yScale)
	return p.String()
}

// GenerateAreaPath closes the line path down to the baseline (height - paddingBottom) so the region
// under the curve can be filled. Empty input yields "".
func GenerateAreaPath(data []DataPoint, xScale, yScale ScaleFunc, height, paddingBottom float64) string {
	if len(data) == 0 {
		return ""
	}
	p := linePath(data, xScale, yScale)
	baseline := height - paddingBottom
	p.LineTo(xScale(data[len(data)-1].X), baseline)
	p.LineTo(xScale(data[0].X), baseline)
	p.Close()
	return p.String()
}

func linePath(data []DataPoint, xScale, yScale ScaleFunc) *Path {
	p := &Path{}
	p.MoveTo(xScale(data[0].X), yScale(data[0].Value))
	for _, d := range data[1:] {
		p.LineTo(xScale(d.X), yScale(d.Value))
	}
	return p
}
