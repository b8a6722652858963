package chartwheel

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

// KRNamespace is the XML namespace of the kr:* attributes that tag the
// semantic role of chart elements.
const KRNamespace = "https://www.kerykeion.net/"

// Element is one SVG node of a Fragment.
type Element interface {
	writeSVG(b *bytes.Buffer)
}

// Fragment is an ordered run of SVG elements. Renderers return fresh
// fragments and never modify one after returning it.
type Fragment []Element

// Concat joins fragments in order.
func Concat(parts ...Fragment) Fragment {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Fragment, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func (f Fragment) String() string {
	var b bytes.Buffer
	f.write(&b)
	return b.String()
}

// WriteTo implements io.WriterTo.
func (f Fragment) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	f.write(&b)
	return b.WriteTo(w)
}

func (f Fragment) write(b *bytes.Buffer) {
	for _, e := range f {
		e.writeSVG(b)
	}
}

// Attr is a raw attribute of a Group.
type Attr struct {
	Name, Value string
}

// Group is a <g> element.
type Group struct {
	Attrs    []Attr
	Children Fragment
}

func (g Group) writeSVG(b *bytes.Buffer) {
	b.WriteString("<g")
	for _, a := range g.Attrs {
		attr(b, a.Name, a.Value)
	}
	b.WriteString(">")
	g.Children.write(b)
	b.WriteString("</g>")
}

// Attr returns the value of the named attribute.
func (g Group) Attr(name string) (string, bool) {
	for _, a := range g.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Circle is a <circle> centered at (CX, CY).
type Circle struct {
	CX, CY, R float64
	Style     string
}

func (c Circle) writeSVG(b *bytes.Buffer) {
	b.WriteString("<circle")
	numAttr(b, "cx", c.CX)
	numAttr(b, "cy", c.CY)
	numAttr(b, "r", c.R)
	attr(b, "style", c.Style)
	b.WriteString("/>")
}

// Line is a <line>. Class is omitted when empty.
type Line struct {
	Class          string
	X1, Y1, X2, Y2 float64
	Style          string
}

func (l Line) writeSVG(b *bytes.Buffer) {
	b.WriteString("<line")
	if l.Class != "" {
		attr(b, "class", l.Class)
	}
	numAttr(b, "x1", l.X1)
	numAttr(b, "y1", l.Y1)
	numAttr(b, "x2", l.X2)
	numAttr(b, "y2", l.Y2)
	attr(b, "style", l.Style)
	b.WriteString("/>")
}

// Wedge is a closed pie slice path: from Center out to From, along a
// counter-clockwise arc of Radius to To, and back.
type Wedge struct {
	Center   Point
	Radius   float64
	From, To Point
	Style    string
}

func (w Wedge) writeSVG(b *bytes.Buffer) {
	b.WriteString(`<path d="M`)
	b.WriteString(num(w.Center.X) + "," + num(w.Center.Y))
	b.WriteString(" L" + num(w.From.X) + "," + num(w.From.Y))
	b.WriteString(" A" + num(w.Radius) + "," + num(w.Radius) + " 0 0,0 ")
	b.WriteString(num(w.To.X) + "," + num(w.To.Y) + ` z"`)
	attr(b, "style", w.Style)
	b.WriteString("/>")
}

// Use references a glyph defined elsewhere in the document.
type Use struct {
	Transform string
	X, Y      float64
	Href      string
}

func (u Use) writeSVG(b *bytes.Buffer) {
	b.WriteString("<use")
	if u.Transform != "" {
		attr(b, "transform", u.Transform)
	}
	numAttr(b, "x", u.X)
	numAttr(b, "y", u.Y)
	attr(b, "xlink:href", "#"+u.Href)
	b.WriteString("/>")
}

// Rect is a <rect>.
type Rect struct {
	X, Y, Width, Height float64
	Style               string
}

func (r Rect) writeSVG(b *bytes.Buffer) {
	b.WriteString("<rect")
	numAttr(b, "x", r.X)
	numAttr(b, "y", r.Y)
	numAttr(b, "width", r.Width)
	numAttr(b, "height", r.Height)
	attr(b, "style", r.Style)
	b.WriteString("/>")
}

// Text is a <text> line positioned only by its baseline y.
type Text struct {
	Y       float64
	Style   string
	Content string
}

func (t Text) writeSVG(b *bytes.Buffer) {
	b.WriteString("<text")
	numAttr(b, "y", t.Y)
	attr(b, "style", t.Style)
	b.WriteString(">")
	escape(b, t.Content)
	b.WriteString("</text>")
}

// Label is a <text> whose content sits in a positioned <tspan>.
type Label struct {
	At      Point
	Style   string
	Content string
}

func (l Label) writeSVG(b *bytes.Buffer) {
	b.WriteString("<text")
	attr(b, "style", l.Style)
	b.WriteString("><tspan")
	numAttr(b, "x", l.At.X)
	numAttr(b, "y", l.At.Y)
	b.WriteString(">")
	escape(b, l.Content)
	b.WriteString("</tspan></text>")
}

// num writes the shortest decimal that parses back to v.
func num(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numAttr(b *bytes.Buffer, name string, v float64) {
	b.WriteString(" " + name + `="` + num(v) + `"`)
}

func attr(b *bytes.Buffer, name, value string) {
	b.WriteString(" " + name + `="`)
	escape(b, value)
	b.WriteString(`"`)
}

func escape(b *bytes.Buffer, s string) {
	// Writes to a bytes.Buffer cannot fail.
	_ = xml.EscapeText(b, []byte(s))
}

// Translate moves body by (dx, dy).
func Translate(dx, dy float64, body Fragment) Fragment {
	return Fragment{Group{
		Attrs:    []Attr{{Name: "transform", Value: "translate(" + num(dx) + "," + num(dy) + ")"}},
		Children: body,
	}}
}

// WriteDocument wraps body in a standalone <svg> document of the given
// size. defs is inserted verbatim inside <defs>; it normally holds the
// sign, planet and orb glyphs that Use elements reference.
func WriteDocument(w io.Writer, width, height int, defs string, body Fragment) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height, `xmlns:kr="`+KRNamespace+`"`)
	if defs != "" {
		canvas.Def()
		io.WriteString(canvas.Writer, defs)
		canvas.DefEnd()
	}
	body.WriteTo(canvas.Writer)
	canvas.End()
	return ew.err
}

// errWriter keeps the first write error so the svgo calls, which do not
// report errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
