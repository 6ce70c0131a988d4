// Package loader (de)serializes a resolved resolve.Program to and from
// a flat binary image a downstream interpreter can load directly,
// without re-running the assembler. Encoding follows the big-endian,
// fixed-width word convention of cpu/endian.go's WordsToBytes/
// BytesToWords, generalized from 16-bit words to the 64-bit Operand
// values the resolver produces.
package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/halfdan-ek/urcasm/resolve"
)

// magic identifies an urcasm binary image and its format version.
var magic = [4]byte{'U', 'R', 'C', '1'}

// Image is the subset of a resolve.Program a downstream interpreter
// needs to execute: headers, instructions, and the relocated memory
// image. Labels and debug line-mapping are tooling metadata, not
// execution state, and are not part of the binary format.
type Image struct {
	Headers      resolve.Headers
	Instructions []resolve.Instruction
	Memory       []uint64
}

// FromProgram projects the execution-relevant fields out of a Program.
func FromProgram(prog *resolve.Program) *Image {
	return &Image{
		Headers:      prog.Headers,
		Instructions: prog.Instructions,
		Memory:       prog.Memory,
	}
}

// Save writes img to w in the urcasm binary format.
func Save(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(magic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}

	headers := [4]uint64{img.Headers.Bits, img.Headers.MinReg, img.Headers.MinHeap, img.Headers.MinStack}
	for _, h := range headers {
		if err := binary.Write(bw, binary.BigEndian, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	if err := binary.Write(bw, binary.BigEndian, uint32(len(img.Instructions))); err != nil {
		return fmt.Errorf("write instruction count: %w", err)
	}
	for _, in := range img.Instructions {
		if err := writeInstruction(bw, in); err != nil {
			return err
		}
	}

	if err := binary.Write(bw, binary.BigEndian, uint32(len(img.Memory))); err != nil {
		return fmt.Errorf("write memory count: %w", err)
	}
	for _, w64 := range img.Memory {
		if err := binary.Write(bw, binary.BigEndian, w64); err != nil {
			return fmt.Errorf("write memory word: %w", err)
		}
	}

	return bw.Flush()
}

func writeInstruction(w io.Writer, in resolve.Instruction) error {
	if err := binary.Write(w, binary.BigEndian, uint16(in.Op)); err != nil {
		return fmt.Errorf("write opcode: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint8(in.NumOperands)); err != nil {
		return fmt.Errorf("write operand count: %w", err)
	}
	for i := 0; i < in.NumOperands; i++ {
		op := in.Operands[i]
		if err := binary.Write(w, binary.BigEndian, uint8(op.Kind)); err != nil {
			return fmt.Errorf("write operand kind: %w", err)
		}
		if err := binary.Write(w, binary.BigEndian, operandValue(op)); err != nil {
			return fmt.Errorf("write operand value: %w", err)
		}
	}
	return nil
}

// operandValue picks the numeric payload matching op.Kind. Label
// operands never reach here in a fully-resolved Program (the
// final-form invariant), but fall back to 0 rather than panicking if
// a caller saves a Program that failed to resolve every label.
func operandValue(op resolve.Operand) uint64 {
	switch op.Kind {
	case resolve.KindReg:
		return op.Reg
	case resolve.KindMem:
		return op.Mem
	case resolve.KindImm:
		return op.Imm
	default:
		return 0
	}
}

// Load reads an Image previously written by Save.
func Load(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	var got [4]byte
	if _, err := io.ReadFull(br, got[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("not an urcasm image (bad magic %x)", got)
	}

	var img Image
	var headers [4]uint64
	for i := range headers {
		if err := binary.Read(br, binary.BigEndian, &headers[i]); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
	}
	img.Headers = resolve.Headers{Bits: headers[0], MinReg: headers[1], MinHeap: headers[2], MinStack: headers[3]}

	var instrCount uint32
	if err := binary.Read(br, binary.BigEndian, &instrCount); err != nil {
		return nil, fmt.Errorf("read instruction count: %w", err)
	}
	img.Instructions = make([]resolve.Instruction, instrCount)
	for i := range img.Instructions {
		in, err := readInstruction(br)
		if err != nil {
			return nil, err
		}
		img.Instructions[i] = in
	}

	var memCount uint32
	if err := binary.Read(br, binary.BigEndian, &memCount); err != nil {
		return nil, fmt.Errorf("read memory count: %w", err)
	}
	img.Memory = make([]uint64, memCount)
	for i := range img.Memory {
		if err := binary.Read(br, binary.BigEndian, &img.Memory[i]); err != nil {
			return nil, fmt.Errorf("read memory word: %w", err)
		}
	}

	return &img, nil
}

func readInstruction(r io.Reader) (resolve.Instruction, error) {
	var in resolve.Instruction

	var op uint16
	if err := binary.Read(r, binary.BigEndian, &op); err != nil {
		return in, fmt.Errorf("read opcode: %w", err)
	}
	in.Op = resolve.Opcode(op)

	var n uint8
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return in, fmt.Errorf("read operand count: %w", err)
	}
	in.NumOperands = int(n)

	for i := 0; i < in.NumOperands; i++ {
		var kind uint8
		if err := binary.Read(r, binary.BigEndian, &kind); err != nil {
			return in, fmt.Errorf("read operand kind: %w", err)
		}
		var value uint64
		if err := binary.Read(r, binary.BigEndian, &value); err != nil {
			return in, fmt.Errorf("read operand value: %w", err)
		}
		in.Operands[i] = operandFromKindValue(resolve.OperandKind(kind), value)
	}

	return in, nil
}

func operandFromKindValue(kind resolve.OperandKind, value uint64) resolve.Operand {
	op := resolve.Operand{Kind: kind}
	switch kind {
	case resolve.KindReg:
		op.Reg = value
	case resolve.KindMem:
		op.Mem = value
	default:
		op.Imm = value
	}
	return op
}
