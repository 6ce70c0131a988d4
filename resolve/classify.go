package resolve

import (
	"fmt"
	"strings"

	"github.com/halfdan-ek/urcasm/diag"
	"github.com/halfdan-ek/urcasm/token"
)

// classifyAt advances the cursor one token and interprets it as an
// operand (spec.md §4.2). It returns the classification alongside the
// token and token index it was read from, so operand-kind checks can
// attach a diagnostic to the right source position.
func (p *Parser) classifyAt() (ast, token.Token, int) {
	p.cur.advance()
	idx := p.cur.currentIdx()
	tok := p.cur.next()
	return p.classifyToken(tok, idx, 0), tok, idx
}

// classify is classifyAt without the site metadata, for callers that
// only need the resulting operand (DW lowering, header directives).
func (p *Parser) classify() ast {
	a, _, _ := p.classifyAt()
	return a
}

// classifyToken interprets tok (read from position idx) as an operand.
// depth bounds recursive @define expansion (maxMacroDepth) — this is
// the one entry point stored macro tokens are re-classified through.
// Only a Char or String token read from the cursor itself (depth 0)
// drains its literal's remaining tokens from the cursor; a stored macro
// token (depth > 0) is classified from that token alone.
func (p *Parser) classifyToken(tok token.Token, idx int, depth int) ast {
	switch tok.Kind {
	case token.Reg:
		return ast{astReg, regOperand(uint64(tok.Value))}

	case token.Int:
		return ast{astInt, immOperand(uint64(tok.Value))}

	case token.Memory:
		return ast{astMem, memOperand(uint64(tok.Value))}

	case token.PortNum:
		return ast{astPort, immOperand(uint64(tok.Value))}

	case token.Port:
		name := strings.ToUpper(strings.TrimPrefix(tok.Text, "%"))
		if id, ok := p.ports.Lookup(name); ok {
			return ast{astPort, immOperand(id)}
		}
		p.sink.Warn(tok, idx, diag.UnknownPort, fmt.Sprintf("unknown port %q", tok.Text))
		return ast{astPort, immOperand(0)}

	case token.Label:
		return p.classifyLabelRef(tok, idx)

	case token.Char:
		var runes []rune
		if depth == 0 {
			runes = p.readQuotedContent(token.Char)
		}
		var cp uint64
		if len(runes) > 0 {
			cp = uint64(runes[0])
		}
		return ast{astInt, immOperand(cp)}

	case token.String:
		if depth == 0 {
			p.readQuotedContent(token.String)
		}
		return ast{astInt, immOperand(0)}

	case token.Relative:
		v := int64(len(p.instructions)) + tok.Value
		return ast{astJumpLocation, immOperand(uint64(v))}

	case token.Macro:
		name := strings.ToLower(strings.TrimPrefix(tok.Text, "@"))
		if val, ok := builtinMacro(name, p.headers.Bits, p.headers.MinHeap); ok {
			return ast{astInt, immOperand(val)}
		}
		p.sink.Warn(tok, idx, diag.UnexpectedMacro, fmt.Sprintf("unknown macro %q", tok.Text))
		return ast{astUnknown, immOperand(0)}

	case token.Name:
		if stored, ok := p.macros.lookup(tok.Text); ok {
			if depth >= maxMacroDepth {
				p.sink.Error(tok, idx, diag.YoMamma, "macro recursion too deep, possible cycle in @define")
				return ast{astUnknown, immOperand(0)}
			}
			return p.classifyToken(stored, idx, depth+1)
		}
		p.sink.Error(tok, idx, diag.InvalidOperand, fmt.Sprintf("unrecognised operand %q", tok.Text))
		return ast{astUnknown, immOperand(0)}

	case token.EOF, token.LineFeed:
		p.sink.Error(tok, idx, diag.NotEnoughOperands, "expected an operand")
		return ast{astUnknown, immOperand(0)}

	default:
		p.sink.Error(tok, idx, diag.InvalidOperand, fmt.Sprintf("unexpected token %s", tok.Kind))
		return ast{astUnknown, immOperand(0)}
	}
}

// classifyLabelRef resolves or defers a `.name` operand reference
// against the label table (spec.md §4.4's reference-site rules). A
// data label's position is a raw memory-array index, not yet in the
// unified address space, so it lowers to Mem — the same operand kind
// a direct memory-address token produces — so the final relocation
// pass (relocate.go) picks it up along with everything else. A code
// label's position is already the final program counter.
func (p *Parser) classifyLabelRef(tok token.Token, idx int) ast {
	e := p.labels.reference(tok.Text, idx)
	if e.defined {
		if e.isData {
			return ast{astLabel, memOperand(e.position)}
		}
		return ast{astLabel, immOperand(e.position)}
	}
	e.codeRefs = append(e.codeRefs, len(p.instructions))
	return ast{astLabel, labelOperand(tok.Text)}
}

// readQuotedContent drains Text/Escape tokens up to and including the
// closing delimiter of kind closeKind (Char or String — the lexer uses
// the same Kind for the opening and closing quote). Reports
// EOFBeforeEndOfString if the stream ends first.
func (p *Parser) readQuotedContent(closeKind token.Kind) []rune {
	var runes []rune
	for {
		tok := p.cur.next()
		switch tok.Kind {
		case token.Text:
			runes = append(runes, []rune(tok.Text)...)
		case token.Escape:
			runes = append(runes, rune(tok.Value))
		case token.EOF:
			p.sink.Error(tok, p.cur.currentIdx(), diag.EOFBeforeEndOfString, "unterminated char/string literal")
			return runes
		default:
			if tok.Kind == closeKind {
				return runes
			}
			return runes
		}
	}
}

func astKindName(k astKind) string {
	switch k {
	case astReg:
		return "register"
	case astInt:
		return "immediate"
	case astMem:
		return "memory address"
	case astPort:
		return "port"
	case astLabel:
		return "label"
	case astJumpLocation:
		return "jump location"
	default:
		return "unknown"
	}
}

// getReg requires a register operand. It is the one hard error in the
// operand-kind checks: the ISA writes through this slot, so anything
// else cannot be executed downstream (spec.md §4.2).
func (p *Parser) getReg() Operand {
	a, tok, idx := p.classifyAt()
	if a.kind != astReg && a.kind != astUnknown {
		p.sink.Error(tok, idx, diag.InvalidOperandType, fmt.Sprintf("expected register, got %s", astKindName(a.kind)))
	}
	return a.op
}

// getPort accepts a register, port, or unknown; anything else is only
// a warning, since the interpreter can still attempt execution.
func (p *Parser) getPort() Operand {
	a, tok, idx := p.classifyAt()
	if a.kind != astReg && a.kind != astPort && a.kind != astUnknown {
		p.sink.Warn(tok, idx, diag.InvalidOperandType, fmt.Sprintf("expected port, got %s", astKindName(a.kind)))
	}
	return a.op
}

// getMem accepts a register, memory address, or unknown.
func (p *Parser) getMem() Operand {
	a, tok, idx := p.classifyAt()
	if a.kind != astReg && a.kind != astMem && a.kind != astUnknown {
		p.sink.Warn(tok, idx, diag.InvalidOperandType, fmt.Sprintf("expected memory address, got %s", astKindName(a.kind)))
	}
	return a.op
}

// getJmp accepts a register, label, jump location, or unknown.
func (p *Parser) getJmp() Operand {
	a, tok, idx := p.classifyAt()
	if a.kind != astReg && a.kind != astLabel && a.kind != astJumpLocation && a.kind != astUnknown {
		p.sink.Warn(tok, idx, diag.InvalidOperandType, fmt.Sprintf("expected jump target, got %s", astKindName(a.kind)))
	}
	return a.op
}

// getImm accepts anything but a register.
func (p *Parser) getImm() Operand {
	a, tok, idx := p.classifyAt()
	if a.kind == astReg {
		p.sink.Warn(tok, idx, diag.InvalidOperandType, "expected immediate, got register")
	}
	return a.op
}

// getOp performs no kind check at all.
func (p *Parser) getOp() Operand {
	return p.classify().op
}
