package diagnostics

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Reasons recorded by the parser.
const (
	ReasonUnknownElement     = "unknown_element"
	ReasonUnknownMacro       = "unknown_macro"
	ReasonUnknownADFNodeType = "unknown_adf_node_type"
	ReasonXMLParseFailed     = "XML parsing failed"
)

// ParseDiagnosticsCode is the text code attached to aggregate parse errors.
const ParseDiagnosticsCode = "PARSE_DIAGNOSTICS"

// Collector accumulates recoverable issues in discovery order. A collector
// belongs to a single parse and is not safe for concurrent use.
type Collector struct {
	entries []string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records "<reason>:<detail>".
func (c *Collector) Add(reason, detail string) {
	c.entries = append(c.entries, reason+":"+detail)
}

// UnknownElement records an element that has no dispatch rule.
func (c *Collector) UnknownElement(tag string) { c.Add(ReasonUnknownElement, tag) }

// UnknownMacro records a macro name without a dedicated variant.
func (c *Collector) UnknownMacro(name string) { c.Add(ReasonUnknownMacro, name) }

// UnknownADFNodeType records an ADF node type the bridge cannot map.
func (c *Collector) UnknownADFNodeType(nodeType string) { c.Add(ReasonUnknownADFNodeType, nodeType) }

// XMLParseFailed records a strict parse failure that triggered the lenient fallback.
func (c *Collector) XMLParseFailed(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	c.entries = append(c.entries, ReasonXMLParseFailed+": "+msg)
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int { return len(c.entries) }

// Entries returns a copy of the recorded diagnostics.
func (c *Collector) Entries() []string {
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// Reason extracts the reason prefix of a diagnostic string.
func Reason(entry string) string {
	if strings.HasPrefix(entry, ReasonXMLParseFailed) {
		return ReasonXMLParseFailed
	}
	if idx := strings.Index(entry, ":"); idx >= 0 {
		return entry[:idx]
	}
	return entry
}

// ParseError is the aggregate failure returned when a parse is configured to
// raise on diagnostics.
type ParseError struct {
	Diagnostics []string
}

func (e *ParseError) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "confluence: parse produced diagnostics"
	case 1:
		return "confluence: parse produced 1 diagnostic: " + e.Diagnostics[0]
	default:
		return fmt.Sprintf("confluence: parse produced %d diagnostics: %s", len(e.Diagnostics), strings.Join(e.Diagnostics, "; "))
	}
}

// NewParseError wraps the diagnostics into a categorised go-errors value.
func NewParseError(entries []string) error {
	copied := make([]string, len(entries))
	copy(copied, entries)
	return goerrors.Wrap(&ParseError{Diagnostics: copied}, goerrors.CategoryValidation, "storage format parse reported diagnostics").
		WithTextCode(ParseDiagnosticsCode)
}

// FromError returns the diagnostics carried by a parse error, if any.
func FromError(err error) ([]string, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Diagnostics, true
	}
	return nil, false
}
