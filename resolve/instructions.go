package resolve

import (
	"fmt"

	"github.com/halfdan-ek/urcasm/diag"
	"github.com/halfdan-ek/urcasm/token"
)

// maxOperands bounds the fixed operand array — no URCL opcode has more
// than three operands (spec.md §3).
const maxOperands = 3

// Instruction is a decoded program step: an opcode plus its operands in
// positional order. A single concrete shape covers every arity (0..3)
// rather than a variant type per opcode, so the final relocation pass
// (see relocate.go) can walk every instruction's operands the same way
// regardless of which opcode it is — the source's opcode-swap bug
// (spec.md §9) only happens when relocation special-cases the opcode,
// so this shape removes the possibility entirely.
type Instruction struct {
	Op       Opcode
	Operands [maxOperands]Operand
	NumOperands int
}

// operandSlice returns the live operand prefix of the fixed array.
func (in *Instruction) operandSlice() []Operand {
	return in.Operands[:in.NumOperands]
}

// parseInstruction dispatches mnemonic op's fixed slot signature to the
// matching operand-kind check, in positional order, then appends the
// decoded instruction (spec.md §4.3).
func (p *Parser) parseInstruction(op Opcode) {
	slots := op.slots()
	var in Instruction
	in.Op = op
	in.NumOperands = len(slots)
	for i, s := range slots {
		switch s {
		case slotDest:
			in.Operands[i] = p.getReg()
		case slotRead:
			in.Operands[i] = p.getOp()
		case slotMem:
			in.Operands[i] = p.getMem()
		case slotPort:
			in.Operands[i] = p.getPort()
		case slotJump:
			in.Operands[i] = p.getJmp()
		case slotImm:
			in.Operands[i] = p.getImm()
		}
	}
	p.instructions = append(p.instructions, in)
	p.assertDone()
	p.debug.PCToLineStart = append(p.debug.PCToLineStart, p.cur.line)
}

// assertDone requires the next non-trivia token to end the line — a
// line feed or EOF. Anything else is a stray extra operand; it is
// reported once and the cursor resynchronises at the next line
// boundary so the rest of the file still parses (spec.md §4.3).
func (p *Parser) assertDone() {
	p.cur.advance()
	cur := p.cur.current()
	if cur.Kind == token.LineFeed || cur.Kind == token.EOF {
		return
	}
	p.sink.Error(cur, p.cur.currentIdx(), diag.TooManyOperands, "too many operands")
	p.cur.skipToLineEnd()
}

// parseHeaderValue consumes the Int operand of a BITS/MINREG/MINHEAP/
// MINSTACK directive, tolerating one intervening non-Int token (width
// suffixes like `BITS.max 64` lex as a stray token before the number).
func (p *Parser) parseHeaderValue() (uint64, bool) {
	p.cur.advance()
	if p.cur.current().Kind == token.Int {
		tok := p.cur.next()
		return uint64(tok.Value), true
	}

	p.cur.next() // skip the one tolerated intervening token
	p.cur.advance()
	if p.cur.current().Kind == token.Int {
		tok := p.cur.next()
		return uint64(tok.Value), true
	}
	return 0, false
}

// unknownInstruction records a mnemonic-like Name that matched no
// opcode and no directive, then resynchronises to the next line.
func (p *Parser) unknownInstruction(tok token.Token, idx int) {
	p.sink.Error(tok, idx, diag.UnknownInstruction, fmt.Sprintf("unknown instruction %q", tok.Text))
	p.cur.skipToLineEnd()
}
