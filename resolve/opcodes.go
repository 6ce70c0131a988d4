package resolve

import "strings"

// Opcode enumerates every URCL mnemonic the core understands (spec.md §6).
type Opcode int

const (
	OpHLT Opcode = iota
	OpNOP
	OpRET
	OpPSH
	OpPOP
	OpJMP
	OpCAL
	OpIMM
	OpMOV
	OpRSH
	OpLSH
	OpLOD
	OpSTR
	OpINC
	OpDEC
	OpOUT
	OpIN
	OpNEG
	OpNOT
	OpABS
	OpBRZ
	OpBNZ
	OpBOD
	OpBEV
	OpBRN
	OpBRP
	OpSRS
	OpADD
	OpSUB
	OpMLT
	OpDIV
	OpMOD
	OpSDIV
	OpAND
	OpOR
	OpNOR
	OpNAND
	OpXOR
	OpXNOR
	OpBSR
	OpBSL
	OpBSS
	OpCPY
	OpLLOD
	OpLSTR
	OpSETE
	OpSETNE
	OpSETG
	OpSETGE
	OpSETL
	OpSETLE
	OpSSETG
	OpSSETGE
	OpSSETL
	OpSSETLE
	OpSETC
	OpSETNC
	OpBRE
	OpBNE
	OpBRL
	OpBRG
	OpBLE
	OpBGE
	OpSBRL
	OpSBRG
	OpSBLE
	OpSBGE
	OpBRC
	OpBNC
)

// slot describes what an operand classifier expects at one instruction
// position: destination register, general read operand, memory address,
// port, jump target, or (only IMM's second operand) a bare immediate.
type slot int

const (
	slotDest slot = iota
	slotRead
	slotMem
	slotPort
	slotJump
	slotImm
)

type opcodeDef struct {
	name  string
	slots []slot
}

var opcodeDefs = map[Opcode]opcodeDef{
	OpHLT: {"HLT", nil},
	OpNOP: {"NOP", nil},
	OpRET: {"RET", nil},

	OpPSH: {"PSH", []slot{slotRead}},
	OpPOP: {"POP", []slot{slotDest}},
	OpJMP: {"JMP", []slot{slotJump}},
	OpCAL: {"CAL", []slot{slotJump}},

	OpIMM: {"IMM", []slot{slotDest, slotImm}},
	OpMOV: {"MOV", []slot{slotDest, slotRead}},
	OpRSH: {"RSH", []slot{slotDest, slotRead}},
	OpLSH: {"LSH", []slot{slotDest, slotRead}},
	OpLOD: {"LOD", []slot{slotDest, slotMem}},
	OpSTR: {"STR", []slot{slotMem, slotRead}},
	OpINC: {"INC", []slot{slotDest, slotRead}},
	OpDEC: {"DEC", []slot{slotDest, slotRead}},
	OpOUT: {"OUT", []slot{slotPort, slotRead}},
	OpIN:  {"IN", []slot{slotDest, slotPort}},
	OpNEG: {"NEG", []slot{slotDest, slotRead}},
	OpNOT: {"NOT", []slot{slotDest, slotRead}},
	OpABS: {"ABS", []slot{slotDest, slotRead}},
	OpBRZ: {"BRZ", []slot{slotJump, slotRead}},
	OpBNZ: {"BNZ", []slot{slotJump, slotRead}},
	OpBOD: {"BOD", []slot{slotJump, slotRead}},
	OpBEV: {"BEV", []slot{slotJump, slotRead}},
	OpBRN: {"BRN", []slot{slotJump, slotRead}},
	OpBRP: {"BRP", []slot{slotJump, slotRead}},
	OpSRS: {"SRS", []slot{slotDest, slotRead}},

	OpADD:  {"ADD", []slot{slotDest, slotRead, slotRead}},
	OpSUB:  {"SUB", []slot{slotDest, slotRead, slotRead}},
	OpMLT:  {"MLT", []slot{slotDest, slotRead, slotRead}},
	OpDIV:  {"DIV", []slot{slotDest, slotRead, slotRead}},
	OpMOD:  {"MOD", []slot{slotDest, slotRead, slotRead}},
	OpSDIV: {"SDIV", []slot{slotDest, slotRead, slotRead}},
	OpAND:  {"AND", []slot{slotDest, slotRead, slotRead}},
	OpOR:   {"OR", []slot{slotDest, slotRead, slotRead}},
	OpNOR:  {"NOR", []slot{slotDest, slotRead, slotRead}},
	OpNAND: {"NAND", []slot{slotDest, slotRead, slotRead}},
	OpXOR:  {"XOR", []slot{slotDest, slotRead, slotRead}},
	OpXNOR: {"XNOR", []slot{slotDest, slotRead, slotRead}},
	OpBSR:  {"BSR", []slot{slotDest, slotRead, slotRead}},
	OpBSL:  {"BSL", []slot{slotDest, slotRead, slotRead}},
	OpBSS:  {"BSS", []slot{slotDest, slotRead, slotRead}},

	OpCPY: {"CPY", []slot{slotMem, slotMem}},

	OpLLOD: {"LLOD", []slot{slotDest, slotRead, slotRead}},
	OpLSTR: {"LSTR", []slot{slotRead, slotRead, slotRead}},

	OpSETE:   {"SETE", []slot{slotDest, slotRead, slotRead}},
	OpSETNE:  {"SETNE", []slot{slotDest, slotRead, slotRead}},
	OpSETG:   {"SETG", []slot{slotDest, slotRead, slotRead}},
	OpSETGE:  {"SETGE", []slot{slotDest, slotRead, slotRead}},
	OpSETL:   {"SETL", []slot{slotDest, slotRead, slotRead}},
	OpSETLE:  {"SETLE", []slot{slotDest, slotRead, slotRead}},
	OpSSETG:  {"SSETG", []slot{slotDest, slotRead, slotRead}},
	OpSSETGE: {"SSETGE", []slot{slotDest, slotRead, slotRead}},
	OpSSETL:  {"SSETL", []slot{slotDest, slotRead, slotRead}},
	OpSSETLE: {"SSETLE", []slot{slotDest, slotRead, slotRead}},
	OpSETC:   {"SETC", []slot{slotDest, slotRead, slotRead}},
	OpSETNC:  {"SETNC", []slot{slotDest, slotRead, slotRead}},

	OpBRE:  {"BRE", []slot{slotJump, slotRead, slotRead}},
	OpBNE:  {"BNE", []slot{slotJump, slotRead, slotRead}},
	OpBRL:  {"BRL", []slot{slotJump, slotRead, slotRead}},
	OpBRG:  {"BRG", []slot{slotJump, slotRead, slotRead}},
	OpBLE:  {"BLE", []slot{slotJump, slotRead, slotRead}},
	OpBGE:  {"BGE", []slot{slotJump, slotRead, slotRead}},
	OpSBRL: {"SBRL", []slot{slotJump, slotRead, slotRead}},
	OpSBRG: {"SBRG", []slot{slotJump, slotRead, slotRead}},
	OpSBLE: {"SBLE", []slot{slotJump, slotRead, slotRead}},
	OpSBGE: {"SBGE", []slot{slotJump, slotRead, slotRead}},
	OpBRC:  {"BRC", []slot{slotJump, slotRead, slotRead}},
	OpBNC:  {"BNC", []slot{slotJump, slotRead, slotRead}},
}

var mnemonicTable map[string]Opcode

func init() {
	mnemonicTable = make(map[string]Opcode, len(opcodeDefs))
	for op, def := range opcodeDefs {
		mnemonicTable[def.name] = op
	}
}

// lookupOpcode resolves a case-insensitive mnemonic to its Opcode.
func lookupOpcode(mnemonic string) (Opcode, bool) {
	op, ok := mnemonicTable[strings.ToUpper(mnemonic)]
	return op, ok
}

func (op Opcode) String() string {
	if def, ok := opcodeDefs[op]; ok {
		return def.name
	}
	return "UNKNOWN"
}

func (op Opcode) slots() []slot {
	return opcodeDefs[op].slots
}
