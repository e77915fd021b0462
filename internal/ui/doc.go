// Package ui holds the small styling kit shared by dashbuild's commands:
// status colours, status symbols and printed tables.
//
// Chart output (cards, sparklines, images) lives in the render package;
// this package only dresses the text around it.
//
// # Color Scheme
//
// Colors are ANSI numbers for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text
//	ColorSecondary (blue)   - Headings
//
// # Tables
//
// RenderSimpleTable prints a bubbles table without focus or selection.
// Columns with a zero width are sized to their contents:
//
//	ui.RenderSimpleTable([]ui.TableColumn{{Title: "Metric"}, {Title: "Latest"}}, rows)
package ui
