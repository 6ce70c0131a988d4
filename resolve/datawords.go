package resolve

import (
	"fmt"

	"github.com/halfdan-ek/urcasm/diag"
	"github.com/halfdan-ek/urcasm/token"
)

// lowerDW handles a `DW` directive: a single data word, or a
// bracketed `[ ... ]` run of them (spec.md §4.5). Called with the
// cursor positioned right after the DW mnemonic token.
func (p *Parser) lowerDW() {
	p.cur.advance()
	if p.cur.current().Kind == token.LeftSquare {
		p.cur.next() // consume '['
		for {
			p.cur.advance()
			switch p.cur.current().Kind {
			case token.RightSquare:
				p.cur.next()
				return
			case token.LineFeed, token.EOF:
				// Missing closing bracket; stop rather than loop forever.
				return
			default:
				p.lowerDataWord()
			}
		}
	}
	p.lowerDataWord()
}

// lowerDataWord appends exactly one word to the memory image from the
// next token, per the DW-specific token interpretation (distinct from
// the general operand classifier in classify.go).
func (p *Parser) lowerDataWord() {
	p.cur.advance()
	idx := p.cur.currentIdx()
	tok := p.cur.next()

	switch tok.Kind {
	case token.Int:
		p.memory = append(p.memory, uint64(tok.Value))

	case token.Memory:
		p.memory = append(p.memory, uint64(tok.Value))
		p.dwMemReplacements = append(p.dwMemReplacements, len(p.memory)-1)

	case token.Label:
		p.lowerDataLabelRef(tok.Text, idx)

	case token.Macro:
		name := tok.Text[1:]
		if val, ok := builtinMacro(name, p.headers.Bits, p.headers.MinHeap); ok {
			p.memory = append(p.memory, val)
			return
		}
		p.sink.Warn(tok, idx, diag.UnexpectedMacro, fmt.Sprintf("unknown macro %q", tok.Text))

	case token.String:
		runes := p.readQuotedContent(token.String)
		for _, r := range runes {
			p.memory = append(p.memory, uint64(r))
		}

	default:
		p.sink.Error(tok, idx, diag.YoMamma, fmt.Sprintf("invalid data word token %s", tok.Kind))
	}
}

// lowerDataLabelRef records a label reference made from inside a DW
// directive. Defined labels lower to their position immediately;
// undefined ones get a placeholder word and a back-reference stored
// directly on the label entry (see labelEntry.dataBackRefs) rather
// than in a second name-keyed map that could go stale against it.
//
// A defined data label's position still needs the final +instructionCount
// relocation, so it is enrolled in dwMemReplacements exactly like a
// direct Memory(v) token; a code label's position is already final.
func (p *Parser) lowerDataLabelRef(name string, idx int) {
	e := p.labels.reference(name, idx)
	if e.defined {
		p.memory = append(p.memory, e.position)
		if e.isData {
			p.dwMemReplacements = append(p.dwMemReplacements, len(p.memory)-1)
		}
		return
	}
	e.dataBackRefs = append(e.dataBackRefs, len(p.memory))
	p.memory = append(p.memory, 0)
}
