package ingest

import "regexp"

// RootName is the local name of the synthetic root element.
const RootName = "#root"

var xmlDeclPattern = regexp.MustCompile(`^\s*<\?xml[^>]*\?>`)

// Result is the outcome of ingesting a markup string.
type Result struct {
	Root *Element
	// StrictErr holds the strict parse failure when the lenient parser
	// produced Root.
	StrictErr error
}

// Fallback reports whether the lenient parser was used.
func (r Result) Fallback() bool {
	return r.StrictErr != nil
}

// Parse repairs surrogates in src and parses it into an element tree. The
// strict XML decoder is tried first; on failure the lenient HTML tokenizer
// is used instead and the strict error is reported in the result.
func Parse(src string) Result {
	src = xmlDeclPattern.ReplaceAllString(RepairSurrogates(src), "")

	root, err := parseStrict(src)
	if err == nil {
		return Result{Root: root}
	}
	return Result{Root: parseLenient(src), StrictErr: err}
}
