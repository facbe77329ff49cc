// Package vm is a small interpreter for the isa instruction grammar, built
// solely so the emit package's tests can execute emitted blocks end to
// end instead of asserting on instruction shape alone. It is a test
// fixture, never part of the compiler's own output path, grounded on
// tinyrange-rtg/std's small stepping-loop interpreters and
// deepnoodle-ai-risor's opcode-dispatch-by-switch idiom.
package vm

import (
	"fmt"

	"basecodec/isa"
)

// ForeignFunc is a host function a program can reach via OpCallForeign,
// keyed by the callee's external name.
type ForeignFunc func(args []uint64) uint64

// Machine executes a fixed program of isa.Blocks. Locals are modelled by
// name rather than by byte offset into a real stack frame: OpFrameOffset
// is accepted but not consulted, a deliberate simplification appropriate
// for a fixture that only ever proves an emitted shape behaves as
// intended, not that it is byte-layout-compatible with a real assembler.
type Machine struct {
	blocks map[string]*isa.Block
	order  []string

	foreign map[string]ForeignFunc

	vregs [16]uint64
	aregs [16]uint64

	stack []uint64
	heap  map[uint64]uint64
	nextAddr uint64

	// lastCmp holds the two operands of the most recent OpCmp, consulted
	// by every OpSet* that follows it.
	lastCmp [2]uint64

	frames []frame
}

type frame struct {
	locals map[string]uint64
}

// New builds a Machine over blocks, indexed by label. foreign supplies the
// host functions reachable via OpCallForeign; a nil map means no foreign
// calls are expected.
func New(blocks []*isa.Block, foreign map[string]ForeignFunc) *Machine {
	m := &Machine{
		blocks:   make(map[string]*isa.Block, len(blocks)),
		foreign:  foreign,
		heap:     make(map[uint64]uint64),
		nextAddr: 1,
	}
	for _, b := range blocks {
		m.blocks[b.Label] = b
		m.order = append(m.order, b.Label)
	}
	return m
}

// Run executes starting at entryLabel until an OpRts unwinds past the
// outermost frame or an OpExit is reached. On that final OpRts it returns
// the value on top of the stack if one was pushed (the callee-pushes-
// result convention of emit_proc.go), otherwise the value left in v0; an
// OpExit returns its operand.
func (m *Machine) Run(entryLabel string) (uint64, error) {
	m.frames = []frame{{locals: map[string]uint64{}}}
	return m.execFrom(entryLabel)
}

// returnPoint records, per OpCall, the label to resume at and the index
// within that block's instruction list to resume from.
type returnPoint struct {
	label string
	index int
}

func (m *Machine) execFrom(label string) (uint64, error) {
	var calls []returnPoint

	blk, ok := m.blocks[label]
	if !ok {
		return 0, fmt.Errorf("vm: no block labelled %q", label)
	}
	idx := 0

	for {
		if idx >= len(blk.Instrs) {
			return 0, fmt.Errorf("vm: fell off the end of block %q without a terminator", blk.Label)
		}
		in := blk.Instrs[idx]

		switch in.Op {
		case isa.OpNop, isa.OpLocal, isa.OpFrameOffset, isa.OpAlign, isa.OpReset,
			isa.OpMetaBegin, isa.OpMetaEnd:
			idx++
			continue

		case isa.OpMove, isa.OpMoves, isa.OpMovez, isa.OpLoad, isa.OpConvert:
			m.store(in.Operands[0], m.load(in.Operands[1]))
			idx++

		case isa.OpStore:
			m.store(in.Operands[0], m.load(in.Operands[1]))
			idx++

		case isa.OpPush:
			m.stack = append(m.stack, m.load(in.Operands[0]))
			idx++

		case isa.OpPop:
			v := m.pop()
			if len(in.Operands) > 0 {
				m.store(in.Operands[0], v)
			}
			idx++

		case isa.OpClr:
			m.store(in.Operands[0], 0)
			idx++

		case isa.OpCmp:
			m.lastCmp = [2]uint64{m.load(in.Operands[0]), m.load(in.Operands[1])}
			idx++

		case isa.OpSetZ:
			m.store(in.Operands[0], boolToWord(m.lastCmp[0] == m.lastCmp[1]))
			idx++
		case isa.OpSetNZ:
			m.store(in.Operands[0], boolToWord(m.lastCmp[0] != m.lastCmp[1]))
			idx++
		case isa.OpSetA:
			m.store(in.Operands[0], boolToWord(m.lastCmp[0] > m.lastCmp[1]))
			idx++
		case isa.OpSetAE:
			m.store(in.Operands[0], boolToWord(m.lastCmp[0] >= m.lastCmp[1]))
			idx++
		case isa.OpSetB:
			m.store(in.Operands[0], boolToWord(m.lastCmp[0] < m.lastCmp[1]))
			idx++
		case isa.OpSetBE:
			m.store(in.Operands[0], boolToWord(m.lastCmp[0] <= m.lastCmp[1]))
			idx++
		case isa.OpSetL:
			m.store(in.Operands[0], boolToWord(int64(m.lastCmp[0]) < int64(m.lastCmp[1])))
			idx++
		case isa.OpSetLE:
			m.store(in.Operands[0], boolToWord(int64(m.lastCmp[0]) <= int64(m.lastCmp[1])))
			idx++
		case isa.OpSetG:
			m.store(in.Operands[0], boolToWord(int64(m.lastCmp[0]) > int64(m.lastCmp[1])))
			idx++
		case isa.OpSetGE:
			m.store(in.Operands[0], boolToWord(int64(m.lastCmp[0]) >= int64(m.lastCmp[1])))
			idx++

		case isa.OpBZ:
			target, _ := in.JumpTarget()
			if m.load(in.Operands[0]) == 0 {
				blk, idx = m.jump(target)
				continue
			}
			idx++
		case isa.OpBNZ:
			target, _ := in.JumpTarget()
			if m.load(in.Operands[0]) != 0 {
				blk, idx = m.jump(target)
				continue
			}
			idx++
		case isa.OpJumpDirect:
			target, _ := in.JumpTarget()
			blk, idx = m.jump(target)
			continue

		case isa.OpCall:
			target, _ := in.JumpTarget()
			calls = append(calls, returnPoint{label: blk.Label, index: idx + 1})
			m.frames = append(m.frames, frame{locals: map[string]uint64{}})
			blk, idx = m.jump(target)
			continue

		case isa.OpCallForeign:
			name := in.Operands[0].Name
			argc := int(in.Operands[1].Immediate)
			args := make([]uint64, argc)
			for i := argc - 1; i >= 0; i-- {
				args[i] = m.pop()
			}
			fn, ok := m.foreign[name]
			if !ok {
				return 0, fmt.Errorf("vm: no foreign function registered for %q", name)
			}
			m.vregs[0] = fn(args)
			idx++

		case isa.OpRts:
			m.frames = m.frames[:len(m.frames)-1]
			if len(calls) == 0 {
				// Nothing above us to pop a pushed result: act as the
				// call site ourselves, the same way a real caller would
				// pop the callee's pushed result immediately after the
				// call returns.
				if len(m.stack) > 0 {
					return m.pop(), nil
				}
				return m.vregs[0], nil
			}
			rp := calls[len(calls)-1]
			calls = calls[:len(calls)-1]
			blk, idx = m.blocks[rp.label], rp.index
			continue

		case isa.OpExit:
			return m.load(in.Operands[0]), nil

		case isa.OpAdd:
			m.arith(in, func(a, b uint64) uint64 { return a + b })
			idx++
		case isa.OpSub:
			m.arith(in, func(a, b uint64) uint64 { return a - b })
			idx++
		case isa.OpMul:
			m.arith(in, func(a, b uint64) uint64 { return a * b })
			idx++
		case isa.OpDiv:
			m.arith(in, func(a, b uint64) uint64 {
				if b == 0 {
					return 0
				}
				return uint64(int64(a) / int64(b))
			})
			idx++
		case isa.OpMod:
			m.arith(in, func(a, b uint64) uint64 {
				if b == 0 {
					return 0
				}
				return uint64(int64(a) % int64(b))
			})
			idx++
		case isa.OpOr:
			m.arith(in, func(a, b uint64) uint64 { return a | b })
			idx++
		case isa.OpAnd:
			m.arith(in, func(a, b uint64) uint64 { return a & b })
			idx++
		case isa.OpXor:
			m.arith(in, func(a, b uint64) uint64 { return a ^ b })
			idx++
		case isa.OpShl:
			m.arith(in, func(a, b uint64) uint64 { return a << b })
			idx++
		case isa.OpShr:
			m.arith(in, func(a, b uint64) uint64 { return a >> b })
			idx++
		case isa.OpNeg:
			m.store(in.Operands[0], uint64(-int64(m.load(in.Operands[1]))))
			idx++
		case isa.OpNot:
			m.store(in.Operands[0], boolToWord(m.load(in.Operands[1]) == 0))
			idx++

		case isa.OpAlloc:
			addr := m.nextAddr
			m.nextAddr += m.load(in.Operands[1])
			m.store(in.Operands[0], addr)
			idx++
		case isa.OpFree:
			idx++
		case isa.OpFill, isa.OpCopy:
			idx++

		default:
			return 0, fmt.Errorf("vm: unsupported opcode %s", in.Op)
		}
	}
}

func (m *Machine) jump(label string) (*isa.Block, int) {
	blk, ok := m.blocks[label]
	if !ok {
		panic(fmt.Sprintf("vm: jump to undefined label %q", label))
	}
	return blk, 0
}

func (m *Machine) pop() uint64 {
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

func (m *Machine) arith(in isa.Instruction, f func(a, b uint64) uint64) {
	var a, b uint64
	if len(in.Operands) == 3 {
		a, b = m.load(in.Operands[1]), m.load(in.Operands[2])
		m.store(in.Operands[0], f(a, b))
	} else {
		a, b = m.load(in.Operands[0]), m.load(in.Operands[1])
		m.store(in.Operands[0], f(a, b))
	}
}

func (m *Machine) curFrame() *frame {
	return &m.frames[len(m.frames)-1]
}

func (m *Machine) load(o isa.Operand) uint64 {
	switch o.Kind {
	case isa.OperandImmediate:
		return o.Immediate
	case isa.OperandRegister:
		if o.Register.Class == isa.RegAddress {
			return m.aregs[o.Register.Index]
		}
		return m.vregs[o.Register.Index]
	case isa.OperandNamed:
		return m.curFrame().locals[o.Name]
	case isa.OperandIndirect:
		return m.heap[m.regValue(o.Register)+uint64(o.ByteOffset)]
	default:
		return 0
	}
}

func (m *Machine) regValue(r isa.Register) uint64 {
	if r.Class == isa.RegAddress {
		return m.aregs[r.Index]
	}
	return m.vregs[r.Index]
}

func (m *Machine) store(o isa.Operand, v uint64) {
	switch o.Kind {
	case isa.OperandRegister:
		if o.Register.Class == isa.RegAddress {
			m.aregs[o.Register.Index] = v
		} else {
			m.vregs[o.Register.Index] = v
		}
	case isa.OperandNamed:
		m.curFrame().locals[o.Name] = v
	case isa.OperandIndirect:
		m.heap[m.regValue(o.Register)+uint64(o.ByteOffset)] = v
	}
}

func boolToWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
