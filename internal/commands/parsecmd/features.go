package parsecmd

// FeatureGates exposes runtime toggles to the handlers. Callers usually pass
// closures reading confluence.Config.Features.
type FeatureGates struct {
	MarkdownEnabled func() bool
}

func (g FeatureGates) markdownEnabled() bool {
	if g.MarkdownEnabled == nil {
		return true
	}
	return g.MarkdownEnabled()
}
