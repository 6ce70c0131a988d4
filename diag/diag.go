// Package diag models the diagnostics sink the assembler core calls into.
// The sink itself is an external collaborator (spec.md calls it "the
// error sink"); this package fixes the taxonomy and default in-memory
// collector every caller needs, following the shape of
// lookbusy1344-arm_emulator/parser/errors.go's Error/ErrorKind/ErrorList.
package diag

import (
	"fmt"

	"github.com/halfdan-ek/urcasm/token"
)

// Kind enumerates every diagnostic the resolver can raise.
type Kind int

const (
	UnknownInstruction Kind = iota
	UnknownPort
	UnexpectedMacro
	InvalidOperand
	InvalidOperandType
	NotEnoughOperands
	TooManyOperands
	DuplicatedLabelName
	UndefinedLabel
	EOFBeforeEndOfString
	YoMamma
)

var kindNames = map[Kind]string{
	UnknownInstruction:   "unknown instruction",
	UnknownPort:          "unknown port",
	UnexpectedMacro:      "unexpected macro",
	InvalidOperand:       "invalid operand",
	InvalidOperandType:   "invalid operand type",
	NotEnoughOperands:    "not enough operands",
	TooManyOperands:      "too many operands",
	DuplicatedLabelName:  "duplicated label name",
	UndefinedLabel:       "undefined label",
	EOFBeforeEndOfString: "unterminated string or char literal",
	YoMamma:              "could not parse this",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Severity distinguishes a hard error from a diagnostic-only warning.
// getReg failures are always errors; every other operand-kind mismatch
// is a warning, because the downstream interpreter can still attempt
// execution (spec.md §4.2's rationale).
type Severity int

const (
	SevError Severity = iota
	SevWarning
)

// Diagnostic is one reported finding, anchored to the token that caused it.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Token    token.Token
	TokenIdx int
	Message  string
}

func (d Diagnostic) String() string {
	level := "error"
	if d.Severity == SevWarning {
		level = "warning"
	}
	if d.Message != "" {
		return fmt.Sprintf("%s: %s: %s (%q)", d.Token.Pos, level, d.Message, d.Token.Text)
	}
	return fmt.Sprintf("%s: %s: %s (%q)", d.Token.Pos, level, d.Kind, d.Token.Text)
}

// Sink is the interface the resolver calls into — spec.md's "error(token,
// kind)" / "warn(token, kind)" pair, generalized to carry the token index
// so callers can reconstruct diagnostic ordering.
type Sink interface {
	Error(tok token.Token, idx int, kind Kind, message string)
	Warn(tok token.Token, idx int, kind Kind, message string)
}
