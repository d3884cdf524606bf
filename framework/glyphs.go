package framework

const (
	GlyphPassed  = "✓"
	GlyphWarning = "⚠"
	GlyphFailed  = "✗"
)

// Glyph returns the symbol used to print a test result of the given status.
func Glyph(s Status) string {
	switch s {
	case StatusFailed:
		return GlyphFailed
	case StatusWarning:
		return GlyphWarning
	default:
		return GlyphPassed
	}
}
