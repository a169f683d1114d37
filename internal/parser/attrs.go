package parser

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-confluence-content/internal/ingest"
)

// intValue parses s as a base 10 integer. Invalid input yields nil.
func intValue(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// boolValue is true only for the literal "true".
func boolValue(s string) bool {
	return strings.TrimSpace(s) == "true"
}

func intAttr(el *ingest.Element, name string) *int {
	return intValue(el.AttrValue(name))
}

func boolAttr(el *ingest.Element, name string) bool {
	return boolValue(el.AttrValue(name))
}

// spanAttr reads rowspan/colspan, defaulting to 1.
func spanAttr(el *ingest.Element, name string) int {
	if v := intAttr(el, name); v != nil && *v > 0 {
		return *v
	}
	return 1
}

func firstAttr(el *ingest.Element, names ...string) string {
	for _, name := range names {
		if v, ok := el.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}
