// Package resolve is the semantic-analysis and resolution pass of the
// assembler core: label resolution, operand typechecking, data-word
// lowering, memory relocation, and text-macro expansion. It consumes a
// token stream from an external lexer and produces a fully-resolved
// Program; it never reads a file and never reports partial results —
// a single Parse call runs the whole sweep.
package resolve

import (
	"fmt"
	"strings"

	"github.com/halfdan-ek/urcasm/diag"
	"github.com/halfdan-ek/urcasm/ports"
	"github.com/halfdan-ek/urcasm/token"
)

// Headers carries the word-width and minimum resource directives
// (spec.md §3). Absent any directive, defaults apply.
type Headers struct {
	Bits     uint64
	MinReg   uint64
	MinHeap  uint64
	MinStack uint64
}

func defaultHeaders() Headers {
	return Headers{Bits: 8, MinReg: 8, MinHeap: 16, MinStack: 16}
}

// DebugInfo maps instructions back to source lines. Source is the
// shared source text handle; PCToLineStart has one entry per emitted
// instruction, in program-counter order.
type DebugInfo struct {
	Source        string
	PCToLineStart []int
}

// LabelPosition is the externally-visible resolved state of one label,
// exposed on Program for tooling (disassemblers, linters) that want to
// map addresses back to names.
type LabelPosition struct {
	Position   uint64
	IsData     bool
	Defined    bool
	Referenced bool
}

// Program is the fully-resolved output of one assembly: headers, the
// decoded instruction sequence, the relocated data-memory image, the
// label table (for external inspection only — Parse never hands back
// a mutable view of it), and line-mapping debug info. It is built once
// and never mutated after Parse returns.
type Program struct {
	Headers      Headers
	Instructions []Instruction
	Memory       []uint64
	Labels       map[string]LabelPosition
	Debug        DebugInfo
}

// Parser holds all mutable state for one assembly sweep. It is
// constructed and discarded inside Parse; callers only ever see the
// resulting Program and diagnostic list.
type Parser struct {
	cur     *cursor
	sink    diag.Sink
	ports   *ports.Registry
	labels  *labelTable
	macros  *macroStore
	headers Headers

	instructions      []Instruction
	memory            []uint64
	dwMemReplacements []int
	debug             DebugInfo
}

// Option configures a Parse call. The zero-value configuration uses
// the default port registry and default headers.
type Option func(*Parser)

// WithPorts overrides the I/O port registry used to resolve `%NAME`
// operands. Defaults to ports.Default().
func WithPorts(r *ports.Registry) Option {
	return func(p *Parser) { p.ports = r }
}

// WithHeaders seeds the initial header values, overridden by any
// BITS/MINREG/MINHEAP/MINSTACK directive encountered during parsing.
func WithHeaders(h Headers) Option {
	return func(p *Parser) { p.headers = h }
}

// Parse runs the full resolution sweep over tokens and returns the
// resolved Program together with every diagnostic collected along the
// way (spec.md §6). Parse never aborts early on an error — diagnostics
// accumulate and a Program is always returned, possibly with
// unresolved detail callers can inspect via the diagnostic list.
func Parse(tokens []token.Token, source string, opts ...Option) (*Program, *diag.List) {
	list := &diag.List{}
	p := &Parser{
		cur:     newCursor(tokens),
		sink:    list,
		ports:   ports.Default(),
		labels:  newLabelTable(),
		macros:  newMacroStore(),
		headers: defaultHeaders(),
		debug:   DebugInfo{Source: source},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.run()
	p.relocate()
	p.reportUndefinedLabels()
	list.SortByTokenIndex()

	prog := &Program{
		Headers:      p.headers,
		Instructions: p.instructions,
		Memory:       p.memory,
		Labels:       p.exportLabels(),
		Debug:        p.debug,
	}
	return prog, list
}

// run is the top-level dispatch loop: Token Cursor → (Instruction
// Parser | Label Definition | Macro Definition | DW) in a single
// left-to-right sweep (spec.md §2).
func (p *Parser) run() {
	for {
		p.cur.consumeLineFeeds()
		cur := p.cur.current()
		if cur.Kind == token.EOF {
			return
		}
		switch cur.Kind {
		case token.Label:
			p.parseLabelDef()
		case token.Macro:
			p.dispatchMacro()
		case token.Name:
			p.dispatchName()
		default:
			idx := p.cur.currentIdx()
			tok := p.cur.next()
			p.unknownInstruction(tok, idx)
		}
	}
}

// isNextDW peeks past trivia (and, per spec.md §4.4, past line feeds —
// this is the one-token-ahead decision that fixes a label's kind) to
// see whether the upcoming mnemonic is DW.
func (p *Parser) isNextDW() bool {
	t := p.cur.peek()
	return t.Kind == token.Name && strings.EqualFold(t.Text, "DW")
}

// parseLabelDef handles a `.name` token at statement position: decide
// code vs data by peeking, install the definition, and back-patch
// every pending reference (spec.md §4.4).
func (p *Parser) parseLabelDef() {
	idx := p.cur.currentIdx()
	tok := p.cur.next()
	name := tok.Text
	isData := p.isNextDW()

	var e *labelEntry
	var ok bool
	if isData {
		e, ok = p.labels.defineData(name, uint64(len(p.memory)))
	} else {
		e, ok = p.labels.defineCode(name, uint64(len(p.instructions)))
	}
	if !ok {
		p.sink.Error(tok, idx, diag.DuplicatedLabelName, fmt.Sprintf("label %q already defined", name))
		return
	}
	p.backpatch(e)
}

// backpatch rewrites every pending operand and data-word reference to
// e now that it has a resolved position. Code positions are final
// (Imm); data positions still need the end-of-parse relocation pass,
// so they lower to Mem here, exactly like a direct memory-address
// token would.
func (p *Parser) backpatch(e *labelEntry) {
	for _, i := range e.codeRefs {
		in := &p.instructions[i]
		for j := 0; j < in.NumOperands; j++ {
			if in.Operands[j].Kind == KindLabel && in.Operands[j].Label == e.name {
				if e.isData {
					in.Operands[j] = memOperand(e.position)
				} else {
					in.Operands[j] = immOperand(e.position)
				}
			}
		}
	}
	for _, m := range e.dataBackRefs {
		p.memory[m] = e.position
		if e.isData {
			p.dwMemReplacements = append(p.dwMemReplacements, m)
		}
	}
}

// dispatchMacro handles a `@name` token at statement position. Only
// `@define` is a statement-level directive; any other bare macro token
// here is not a valid instruction.
func (p *Parser) dispatchMacro() {
	idx := p.cur.currentIdx()
	tok := p.cur.next()
	if !strings.EqualFold(tok.Text, "@define") {
		p.unknownInstruction(tok, idx)
		return
	}

	p.cur.advance()
	nameTok := p.cur.next()
	if nameTok.Kind != token.Name {
		p.sink.Error(nameTok, p.cur.currentIdx(), diag.YoMamma, "@define expects a name")
		p.cur.skipToLineEnd()
		return
	}

	p.cur.advance()
	valueTok := p.cur.next()
	p.macros.define(nameTok.Text, valueTok)
	p.assertDone()
}

// dispatchName handles a bare identifier at statement position: a
// header directive, DW, or an opcode mnemonic (spec.md §4.3, §6).
func (p *Parser) dispatchName() {
	idx := p.cur.currentIdx()
	tok := p.cur.next()

	switch strings.ToUpper(tok.Text) {
	case "BITS":
		if v, ok := p.parseHeaderValue(); ok {
			p.headers.Bits = v
		}
		p.assertDone()
		return
	case "MINREG":
		if v, ok := p.parseHeaderValue(); ok {
			p.headers.MinReg = v
		}
		p.assertDone()
		return
	case "MINHEAP":
		if v, ok := p.parseHeaderValue(); ok {
			p.headers.MinHeap = v
		}
		p.assertDone()
		return
	case "MINSTACK":
		if v, ok := p.parseHeaderValue(); ok {
			p.headers.MinStack = v
		}
		p.assertDone()
		return
	case "DW":
		p.lowerDW()
		p.assertDone()
		return
	}

	if op, ok := lookupOpcode(tok.Text); ok {
		p.parseInstruction(op)
		return
	}
	p.unknownInstruction(tok, idx)
}

// reportUndefinedLabels emits one UndefinedLabel error per referencing
// token, for every label never defined — run after the main sweep, in
// label-table insertion order (spec.md §4.4, §5's ordering note).
func (p *Parser) reportUndefinedLabels() {
	for _, e := range p.labels.undefined() {
		for _, idx := range e.refTokens {
			tok := token.Token{}
			if idx < len(p.cur.tokens) {
				tok = p.cur.tokens[idx]
			}
			p.sink.Error(tok, idx, diag.UndefinedLabel, fmt.Sprintf("undefined label %q", e.name))
		}
	}
}

// exportLabels builds the externally-visible label snapshot. Data
// label positions are reported in the final unified address space,
// matching the relocated form every other memory value ends up in.
func (p *Parser) exportLabels() map[string]LabelPosition {
	out := make(map[string]LabelPosition, len(p.labels.order))
	instrCount := uint64(len(p.instructions))
	for _, name := range p.labels.order {
		e := p.labels.byName[name]
		pos := e.position
		if e.defined && e.isData {
			pos += instrCount
		}
		out[name] = LabelPosition{Position: pos, IsData: e.isData, Defined: e.defined, Referenced: len(e.refTokens) > 0}
	}
	return out
}
