package chartwheel

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is an element of emitted markup that carries a kr:node role.
type Node struct {
	Role    string            // value of kr:node
	Element string            // local tag name, usually "g"
	Attrs   map[string]string // other kr:* attributes, without prefix
	Text    string            // character data of the subtree
}

// Inspect reads chart markup back and returns its role-tagged elements in
// document order. It accepts bare fragments as well as whole documents.
func Inspect(r io.Reader) ([]Node, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	type open struct {
		index int // into nodes, -1 for untagged elements
		text  strings.Builder
	}
	var (
		nodes []Node
		stack []*open
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			o := &open{index: -1}
			if n, ok := roleNode(t); ok {
				o.index = len(nodes)
				nodes = append(nodes, n)
			}
			stack = append(stack, o)
		case xml.CharData:
			for _, o := range stack {
				if o.index >= 0 {
					o.text.Write(t)
				}
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unbalanced </%s>", ErrInvalidInput, t.Name.Local)
			}
			o := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if o.index >= 0 {
				nodes[o.index].Text = o.text.String()
			}
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed elements", ErrInvalidInput, len(stack))
	}
	return nodes, nil
}

func isKR(name xml.Name) bool {
	return name.Space == "kr" || name.Space == KRNamespace
}

func roleNode(t xml.StartElement) (Node, bool) {
	n := Node{Element: t.Name.Local}
	tagged := false
	for _, a := range t.Attr {
		if !isKR(a.Name) {
			continue
		}
		if a.Name.Local == "node" {
			n.Role = a.Value
			tagged = true
			continue
		}
		if n.Attrs == nil {
			n.Attrs = make(map[string]string)
		}
		n.Attrs[a.Name.Local] = a.Value
	}
	return n, tagged
}

// Roles counts the inspected nodes by role.
func Roles(nodes []Node) map[string]int {
	counts := make(map[string]int)
	for _, n := range nodes {
		counts[n.Role]++
	}
	return counts
}
