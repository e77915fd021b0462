package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Command completed
	SymbolFail    = "✗" // Command failed
	SymbolWarning = "!" // Completed with a warning
	SymbolArrow   = "→" // Range separator and next steps
)
