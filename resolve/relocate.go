package resolve

// relocate runs once, after the main parse sweep, and converts every
// remaining memory-kind value into the unified address space: data
// lives after code, so a memory offset v becomes v + instructionCount
// (spec.md §4.7).
//
// It walks every operand of every instruction by field position, never
// by opcode — the source's relocation pass swapped BSL/BSR, turned
// SETC into SETG and SETNC into SETGE, and dropped HLT/NOP/RET/SETC
// because it special-cased the
// opcode while rewriting; operating on operand shape alone removes the
// opcode from the decision entirely.
func (p *Parser) relocate() {
	instrCount := uint64(len(p.instructions))
	for i := range p.instructions {
		in := &p.instructions[i]
		for j := 0; j < in.NumOperands; j++ {
			if in.Operands[j].Kind == KindMem {
				in.Operands[j] = immOperand(in.Operands[j].Mem + instrCount)
			}
		}
	}
	for _, m := range p.dwMemReplacements {
		p.memory[m] += instrCount
	}
}
