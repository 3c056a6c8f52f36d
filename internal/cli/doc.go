// Package cli wires the quill command tree.
//
// The main entry is "quill generate", which drafts a commit message from the
// staged diff. "quill prepare-commit-msg" is the hidden hook entry installed
// by "quill hook install". Commands set the package exit code rather than
// returning errors so cobra never double-prints.
package cli
