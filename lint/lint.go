// Package lint runs supplementary checks over an assembled program
// that the resolver itself does not report because they are
// style/best-practice findings rather than resolution failures —
// modeled on lookbusy1344-arm_emulator/tools/lint.go's Linter, trimmed
// to the two checks that make sense without a full instruction-level
// data-flow pass: unused labels and unreachable code after an
// unconditional terminator.
package lint

import (
	"fmt"
	"sort"

	"github.com/halfdan-ek/urcasm/resolve"
	"github.com/halfdan-ek/urcasm/token"
)

// Level is the severity of a lint finding.
type Level int

const (
	LevelWarning Level = iota
	LevelInfo
)

func (l Level) String() string {
	if l == LevelInfo {
		return "info"
	}
	return "warning"
}

// Issue is a single supplementary finding, independent of the
// resolver's own diagnostics.
type Issue struct {
	Level   Level
	Line    int
	Message string
	Code    string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// Options controls which checks run.
type Options struct {
	CheckUnusedLabels bool
	CheckUnreachable  bool
}

// DefaultOptions enables every check.
func DefaultOptions() *Options {
	return &Options{CheckUnusedLabels: true, CheckUnreachable: true}
}

// terminators are the 0-ary opcodes after which straight-line fallthrough
// never happens unless something else jumps there.
var terminators = map[resolve.Opcode]bool{
	resolve.OpHLT: true,
	resolve.OpRET: true,
}

// Lint runs the enabled checks against an already-resolved program,
// using tokens to recover source line numbers for label positions.
func Lint(prog *resolve.Program, tokens []token.Token, opts *Options) []Issue {
	if opts == nil {
		opts = DefaultOptions()
	}
	var issues []Issue

	if opts.CheckUnusedLabels {
		issues = append(issues, checkUnusedLabels(prog, tokens)...)
	}
	if opts.CheckUnreachable {
		issues = append(issues, checkUnreachable(prog)...)
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })
	return issues
}

// checkUnusedLabels flags every defined label that the token stream
// never referenced as an operand.
func checkUnusedLabels(prog *resolve.Program, tokens []token.Token) []Issue {
	var issues []Issue
	for name, lp := range prog.Labels {
		if !lp.Defined || lp.Referenced {
			continue
		}
		line := labelDefinitionLine(tokens, name)
		issues = append(issues, Issue{
			Level:   LevelInfo,
			Line:    line,
			Message: fmt.Sprintf("label %q defined but never referenced", name),
			Code:    "UNUSED_LABEL",
		})
	}
	return issues
}

// labelDefinitionLine finds the source line of the first `.name`
// token — the definition site, since a Label token used as an operand
// also has this exact text; in practice the definition is readily
// identified as the first occurrence whose following non-trivia token
// is not itself part of an operand list, but scanning for the first
// occurrence is enough for a line-number hint in a diagnostic.
func labelDefinitionLine(tokens []token.Token, name string) int {
	for _, t := range tokens {
		if t.Kind == token.Label && t.Text == name {
			return t.Pos.Line
		}
	}
	return 0
}

// checkUnreachable flags an instruction immediately following an
// unconditional HLT/RET with no label bound to it — nothing can jump
// there, so it can never execute.
func checkUnreachable(prog *resolve.Program) []Issue {
	var issues []Issue
	targets := make(map[uint64]bool, len(prog.Labels))
	for _, lp := range prog.Labels {
		if lp.Defined && !lp.IsData {
			targets[lp.Position] = true
		}
	}

	for i, in := range prog.Instructions {
		if !terminators[in.Op] {
			continue
		}
		next := i + 1
		if next >= len(prog.Instructions) {
			continue
		}
		if targets[uint64(next)] {
			continue
		}
		line := 0
		if next < len(prog.Debug.PCToLineStart) {
			line = prog.Debug.PCToLineStart[next]
		}
		issues = append(issues, Issue{
			Level:   LevelWarning,
			Line:    line,
			Message: "unreachable code after unconditional HLT/RET",
			Code:    "UNREACHABLE_CODE",
		})
	}
	return issues
}
