package diag

import (
	"sort"
	"strings"

	"github.com/halfdan-ek/urcasm/token"
)

// List is the default Sink: an in-memory collector that never aborts
// parsing, mirroring lookbusy1344-arm_emulator/parser/errors.go's
// ErrorList (HasErrors, String() rendering, collect-don't-abort).
type List struct {
	items []Diagnostic
}

var _ Sink = (*List)(nil)

// Error records a hard diagnostic.
func (l *List) Error(tok token.Token, idx int, kind Kind, message string) {
	l.items = append(l.items, Diagnostic{Severity: SevError, Kind: kind, Token: tok, TokenIdx: idx, Message: message})
}

// Warn records a diagnostic-only finding.
func (l *List) Warn(tok token.Token, idx int, kind Kind, message string) {
	l.items = append(l.items, Diagnostic{Severity: SevWarning, Kind: kind, Token: tok, TokenIdx: idx, Message: message})
}

// HasErrors reports whether any SevError diagnostic was recorded.
func (l *List) HasErrors() bool {
	for _, d := range l.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// All returns every diagnostic recorded so far.
func (l *List) All() []Diagnostic {
	return l.items
}

// Errors returns only the SevError diagnostics.
func (l *List) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range l.items {
		if d.Severity == SevError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the SevWarning diagnostics.
func (l *List) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range l.items {
		if d.Severity == SevWarning {
			out = append(out, d)
		}
	}
	return out
}

// SortByTokenIndex orders diagnostics by the token index at which they
// were detected. UndefinedLabel diagnostics, emitted after the main pass
// in label-table iteration order, are left in place at the end — spec.md
// §5's ordering guarantee ("modulo post-hoc UndefinedLabel errors").
func (l *List) SortByTokenIndex() {
	sort.SliceStable(l.items, func(i, j int) bool {
		a, b := l.items[i], l.items[j]
		if a.Kind == UndefinedLabel && b.Kind != UndefinedLabel {
			return false
		}
		if b.Kind == UndefinedLabel && a.Kind != UndefinedLabel {
			return true
		}
		return a.TokenIdx < b.TokenIdx
	})
}

// String renders every recorded diagnostic, one per line. (The Error
// name is taken by the Sink method, so *List does not satisfy the error
// interface.)
func (l *List) String() string {
	var sb strings.Builder
	for _, d := range l.items {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
