// Package ui provides terminal output components for qdoc commands.
//
// This package uses the Charm libraries (lipgloss, bubbles, bubbletea)
// for styled terminal output including tables, a spinner, and a fuzzy
// document picker.
//
// # Output Streams
//
// Every animated or interactive component renders to stderr so that
// stdout stays safe to pipe. Commands print their final result (table,
// JSON, plain text) to stdout through the output package.
//
// # Components
//
//   - [RenderTable]: borderless table with bold headers, used by the
//     status and list commands
//   - [StatusRow]: formats one repository status as styled table cells
//   - [Spinner]: non-interactive progress indicator for repository scans
//   - [Pick]: fuzzy-filtered selection list for choosing a document
//
// # Design Notes
//
// Output is designed for terminal display with:
//   - Monospace font assumptions
//   - ANSI color support, degraded through the detected color profile
//   - Plain fallbacks when the stream is not a terminal (callers gate
//     interactive components on [IsTerminal])
package ui
