package resolve_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/halfdan-ek/urcasm/diag"
	"github.com/halfdan-ek/urcasm/resolve"
	"github.com/halfdan-ek/urcasm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) (*resolve.Program, *diag.List) {
	t.Helper()
	toks := token.NewLexer(src).Tokenize()
	return resolve.Parse(toks, src)
}

func TestForwardLabelReference(t *testing.T) {
	prog, errs := parseProgram(t, "JMP .end\nHLT\n.end\nHLT\n")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.All())
	require.Len(t, prog.Instructions, 3)

	assert.Equal(t, resolve.OpJMP, prog.Instructions[0].Op)
	assert.Equal(t, resolve.KindImm, prog.Instructions[0].Operands[0].Kind)
	assert.EqualValues(t, 2, prog.Instructions[0].Operands[0].Imm)

	assert.Equal(t, resolve.OpHLT, prog.Instructions[1].Op)
	assert.Equal(t, resolve.OpHLT, prog.Instructions[2].Op)
}

func TestDataLabelRelocation(t *testing.T) {
	prog, errs := parseProgram(t, "LOD R1 .data\nHLT\n.data\nDW 42\n")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.All())
	require.Len(t, prog.Instructions, 2)

	lod := prog.Instructions[0]
	assert.Equal(t, resolve.OpLOD, lod.Op)
	assert.Equal(t, resolve.KindReg, lod.Operands[0].Kind)
	assert.EqualValues(t, 1, lod.Operands[0].Reg)
	assert.Equal(t, resolve.KindImm, lod.Operands[1].Kind)
	assert.EqualValues(t, 2, lod.Operands[1].Imm, "data index 0 + instruction count 2")

	assert.Equal(t, []uint64{42}, prog.Memory)
}

func TestUndefinedLabelReported(t *testing.T) {
	_, errs := parseProgram(t, "JMP .nowhere\nHLT\n")
	require.True(t, errs.HasErrors())

	found := false
	for _, d := range errs.All() {
		if d.Kind == diag.UndefinedLabel {
			found = true
		}
	}
	assert.True(t, found, "expected an UndefinedLabel diagnostic")
}

func TestOperandTypeErrorOnBadRegister(t *testing.T) {
	_, errs := parseProgram(t, "MOV 5 R1\n")
	require.True(t, errs.HasErrors())
	assert.Equal(t, diag.InvalidOperandType, errs.All()[0].Kind)
}

func TestMacroExpansion(t *testing.T) {
	prog, errs := parseProgram(t, "@define TEN 10\nIMM R1 TEN\n")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.All())
	require.Len(t, prog.Instructions, 1)

	imm := prog.Instructions[0]
	assert.Equal(t, resolve.OpIMM, imm.Op)
	assert.EqualValues(t, 1, imm.Operands[0].Reg)
	assert.EqualValues(t, 10, imm.Operands[1].Imm)
}

func TestDataWordForms(t *testing.T) {
	prog, errs := parseProgram(t, "DW [ 1 2 \"ab\" .L ]\n.L\nHLT\n")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.All())
	// .L is a code label bound to pc 0; a code label's value needs no relocation.
	assert.Equal(t, []uint64{1, 2, 'a', 'b', 0}, prog.Memory)
}

func TestHeaderDefaults(t *testing.T) {
	prog, _ := parseProgram(t, "HLT\n")
	assert.EqualValues(t, 8, prog.Headers.Bits)
	assert.EqualValues(t, 8, prog.Headers.MinReg)
	assert.EqualValues(t, 16, prog.Headers.MinHeap)
	assert.EqualValues(t, 16, prog.Headers.MinStack)
}

func TestHeaderDirectiveOverride(t *testing.T) {
	prog, errs := parseProgram(t, "BITS 32\nMINREG 4\nMINHEAP 64\nMINSTACK 64\nHLT\n")
	require.False(t, errs.HasErrors())
	assert.EqualValues(t, 32, prog.Headers.Bits)
	assert.EqualValues(t, 4, prog.Headers.MinReg)
	assert.EqualValues(t, 64, prog.Headers.MinHeap)
	assert.EqualValues(t, 64, prog.Headers.MinStack)
}

func TestFinalFormInvariant(t *testing.T) {
	prog, _ := parseProgram(t, "LOD R1 .data\nJMP .end\nHLT\n.data\nDW 1\n.end\nHLT\n")
	for _, in := range prog.Instructions {
		for i := 0; i < in.NumOperands; i++ {
			op := in.Operands[i]
			assert.NotEqual(t, resolve.KindLabel, op.Kind, "final form forbids Label operands")
			assert.NotEqual(t, resolve.KindMem, op.Kind, "final form forbids Mem operands")
		}
	}
}

func TestLineMapTotality(t *testing.T) {
	prog, _ := parseProgram(t, "HLT\nNOP\nRET\n")
	require.Len(t, prog.Debug.PCToLineStart, len(prog.Instructions))
	for i := 1; i < len(prog.Debug.PCToLineStart); i++ {
		assert.GreaterOrEqual(t, prog.Debug.PCToLineStart[i], prog.Debug.PCToLineStart[i-1])
	}
}

func TestTooManyOperandsResyncs(t *testing.T) {
	prog, errs := parseProgram(t, "HLT R1 R2\nNOP\n")
	require.True(t, errs.HasErrors())
	assert.Equal(t, diag.TooManyOperands, errs.All()[0].Kind)
	// Parsing must resynchronise and still see the following NOP.
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, resolve.OpNOP, prog.Instructions[1].Op)
}

func TestDuplicateLabelReported(t *testing.T) {
	_, errs := parseProgram(t, ".L\nHLT\n.L\nHLT\n")
	require.True(t, errs.HasErrors())
	assert.Equal(t, diag.DuplicatedLabelName, errs.All()[0].Kind)
}

func TestBuiltinMacros(t *testing.T) {
	prog, errs := parseProgram(t, "IMM R1 @bits\n")
	require.False(t, errs.HasErrors(), "unexpected errors: %v", errs.All())
	assert.EqualValues(t, prog.Headers.Bits, prog.Instructions[0].Operands[1].Imm)
}

func TestMacroRecursionDepthBound(t *testing.T) {
	var sb strings.Builder
	// A chain of 70 @define hops, each pointing at the next — past
	// maxMacroDepth — confirms the parser terminates with a diagnostic
	// instead of recursing forever.
	for i := 0; i < 70; i++ {
		fmt.Fprintf(&sb, "@define A%d A%d\n", i, i+1)
	}
	sb.WriteString("IMM R1 A0\n")

	_, errs := parseProgram(t, sb.String())
	assert.True(t, errs.HasErrors())
}
