// Package output formats drafted commit messages for display or machine
// consumption.
//
// Two formats are supported:
//   - text: the plain commit message (default)
//   - json: full structured report with repo metadata and timing
//
// Use [GetWriter] to obtain a [Writer] for a format string; [WriteReport]
// handles file-or-stdout destination selection.
package output
