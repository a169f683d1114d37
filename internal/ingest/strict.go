package ingest

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	wrapperOpen = `<ac:confluence xmlns:ac="` + NamespaceMacro +
		`" xmlns:ri="` + NamespaceResource +
		`" xmlns:at="` + NamespaceI18n + `">`
	wrapperClose = `</ac:confluence>`
)

var errUnbalanced = errors.New("ingest: unbalanced element stack")

// parseStrict decodes src as well formed XML inside a synthetic root that
// declares the storage format namespaces.
func parseStrict(src string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(wrapperOpen + src + wrapperClose))
	dec.Strict = true
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	root := &Element{Local: RootName}
	var stack []*Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 {
				// synthetic wrapper
				stack = append(stack, root)
				continue
			}
			el := &Element{
				Prefix: prefixFor(t.Name.Space),
				Local:  strings.ToLower(t.Name.Local),
				Attrs:  strictAttrs(t.Attr),
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errUnbalanced
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			appendText(stack[len(stack)-1], string(t))
		}
	}
	if len(stack) != 0 {
		return nil, errUnbalanced
	}
	return root, nil
}

func strictAttrs(in []xml.Attr) []Attr {
	if len(in) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, Attr{
			Prefix: prefixFor(a.Name.Space),
			Local:  strings.ToLower(a.Name.Local),
			Value:  a.Value,
		})
	}
	return out
}

// appendText merges adjacent character data runs.
func appendText(parent *Element, text string) {
	if text == "" {
		return
	}
	if n := len(parent.Children); n > 0 {
		if last, ok := parent.Children[n-1].(*CharData); ok {
			last.Text += text
			return
		}
	}
	parent.Children = append(parent.Children, &CharData{Text: text})
}
