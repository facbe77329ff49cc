// Package varplan assigns every declaration a concrete emission home: a
// section, a frame offset (for locals), a label, and a pair of logical
// registers tracked through activation/deactivation as the emitter walks
// the procedure body (spec.md §3.5, §4.5.1 step 5, §6.4). It is grounded
// on `original_source/basecode/compiler/variable.cpp`'s `activate`/
// `deactivate` register bookkeeping and `is_pending_init`/
// `parent_variable` fields (SPEC_FULL.md §6 item 1), combined with the
// section-bucketing sketched in the teacher's `generate/gen_defs.go`.
package varplan

import (
	"fmt"

	"basecodec/elements"
	"basecodec/isa"
	"basecodec/types"
)

// Variable is the planning record for one declaration: where it lives,
// how it's addressed, and which registers currently hold its value/
// address (spec.md §3.5).
type Variable struct {
	Decl    elements.ID
	Symbol  string
	Type    types.Type
	Section isa.Section

	// Label is the emitted symbol name for module-level (ro_data/data/
	// bss) variables; empty for stack locals, which are addressed by
	// FrameOffset instead.
	Label string

	// FrameOffset is the byte offset from the frame pointer for a local
	// variable; meaningless for module-level variables (Section != SectionText).
	FrameOffset int

	// ValueReg/AddressReg are the currently activated logical registers,
	// or nil when deactivated (spec.md §3.5 "variables may be activated
	// ... and deactivated").
	ValueReg   *isa.Register
	AddressReg *isa.Register

	// Read/Written/Addressed/Copied track the latest value's usage since
	// it was last (re)activated (SPEC_FULL.md §6 item 1).
	Read      bool
	Written   bool
	Addressed bool
	Copied    bool

	// PendingInit is true until this variable's initializer has been
	// emitted (SPEC_FULL.md §6 item 1, `is_pending_init`).
	PendingInit bool

	// Parent is a weak back-edge to the variable owning this one's
	// storage, used by composite fields that share their parent's base
	// address (SPEC_FULL.md §6 item 1, `parent_variable`). Zero if none.
	Parent elements.ID
}

// activate binds class to reg, clearing the per-activation usage flags.
func (v *Variable) activate(class isa.RegisterClass, reg isa.Register) {
	switch class {
	case isa.RegValue:
		v.ValueReg = &reg
	case isa.RegAddress:
		v.AddressReg = &reg
	}
	v.Read, v.Written, v.Addressed, v.Copied = false, false, false, false
}

// deactivate releases class's register.
func (v *Variable) deactivate(class isa.RegisterClass) {
	switch class {
	case isa.RegValue:
		v.ValueReg = nil
	case isa.RegAddress:
		v.AddressReg = nil
	}
}

// label synthesises a deterministic label for a module-level variable:
// `_var_` followed by the symbol's bare name, or by the declaration id
// when the name is empty, so globals are addressable by name (spec.md
// §6.4). The namespace qualification is not part of the label.
func label(symbol string, declID elements.ID) string {
	if symbol != "" {
		return "_var_" + symbol
	}
	return fmt.Sprintf("_var_%d", declID)
}
