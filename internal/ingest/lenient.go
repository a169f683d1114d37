package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

const cdataCommentPrefix = "[CDATA["

var voidElements = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// impliedEnd closes the nearest open element named in closes, searching
// down the stack until a boundary or a prefixed element is reached.
type impliedEnd struct {
	closes   map[string]struct{}
	boundary map[string]struct{}
}

func names(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

var (
	closesParagraph = impliedEnd{
		closes:   names("p"),
		boundary: names("table", "td", "th", "caption", "button"),
	}
	closesListItem = impliedEnd{closes: names("li"), boundary: names("ul", "ol")}
	closesDefItem  = impliedEnd{closes: names("dt", "dd"), boundary: names("dl")}
	closesCell     = impliedEnd{closes: names("td", "th"), boundary: names("tr", "table")}
	closesRow      = impliedEnd{closes: names("tr"), boundary: names("table", "thead", "tbody", "tfoot")}
	closesSection  = impliedEnd{closes: names("thead", "tbody", "tfoot"), boundary: names("table")}
	closesOption   = impliedEnd{closes: names("option"), boundary: names("select", "datalist", "optgroup")}
	closesOptGroup = impliedEnd{closes: names("optgroup"), boundary: names("select")}
)

// impliedEnds maps a start tag to the HTML end tags it implies, applied in
// order.
var impliedEnds = map[string][]impliedEnd{
	"li":       {closesListItem, closesParagraph},
	"dt":       {closesDefItem, closesParagraph},
	"dd":       {closesDefItem, closesParagraph},
	"td":       {closesCell},
	"th":       {closesCell},
	"tr":       {closesRow},
	"thead":    {closesSection},
	"tbody":    {closesSection},
	"tfoot":    {closesSection},
	"option":   {closesOption},
	"optgroup": {closesOption, closesOptGroup},
}

func init() {
	for _, tag := range []string{
		"address", "article", "aside", "blockquote", "details", "div", "dl",
		"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3",
		"h4", "h5", "h6", "header", "hr", "main", "nav", "ol", "p", "pre",
		"section", "table", "ul",
	} {
		impliedEnds[tag] = append(impliedEnds[tag], closesParagraph)
	}
}

// closeImplied pops the open elements that a new unprefixed start tag ends
// implicitly, such as an open li before a sibling li.
func closeImplied(stack []*Element, el *Element) []*Element {
	if el.Prefix != "" {
		return stack
	}
	for _, rule := range impliedEnds[el.Local] {
		for i := len(stack) - 1; i > 0; i-- {
			open := stack[i]
			if open.Prefix != "" {
				break
			}
			if _, ok := rule.closes[open.Local]; ok {
				stack = stack[:i]
				break
			}
			if _, ok := rule.boundary[open.Local]; ok {
				break
			}
		}
	}
	return stack
}

// parseLenient tokenizes src with the HTML tokenizer and builds the same
// element tree the strict pass would. Prefixed names such as "ac:link" are
// split on the first colon. HTML implied end tags are applied, unmatched end
// tags are ignored and open elements are closed at end of input.
func parseLenient(src string) *Element {
	z := html.NewTokenizer(strings.NewReader(src))
	z.AllowCDATA(true)

	root := &Element{Local: RootName}
	stack := []*Element{root}
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return root
		case html.TextToken:
			appendText(stack[len(stack)-1], z.Token().Data)
		case html.CommentToken:
			data := z.Token().Data
			if strings.HasPrefix(data, cdataCommentPrefix) {
				data = strings.TrimSuffix(strings.TrimPrefix(data, cdataCommentPrefix), "]]")
				appendText(stack[len(stack)-1], data)
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			el := lenientElement(tok)
			stack = closeImplied(stack, el)
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, el)
			if tt == html.StartTagToken && !isVoid(el) {
				stack = append(stack, el)
			}
		case html.EndTagToken:
			prefix, local := splitName(z.Token().Data)
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Prefix == prefix && stack[i].Local == local {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

func lenientElement(tok html.Token) *Element {
	prefix, local := splitName(tok.Data)
	el := &Element{Prefix: prefix, Local: local}
	for _, a := range tok.Attr {
		attrPrefix, attrLocal := splitName(a.Key)
		if a.Namespace != "" && attrPrefix == "" {
			attrPrefix = strings.ToLower(a.Namespace)
		}
		if attrPrefix == "xmlns" || (attrPrefix == "" && attrLocal == "xmlns") {
			continue
		}
		el.Attrs = append(el.Attrs, Attr{Prefix: attrPrefix, Local: attrLocal, Value: a.Val})
	}
	return el
}

func isVoid(el *Element) bool {
	if el.Prefix != "" {
		return false
	}
	_, ok := voidElements[el.Local]
	return ok
}
