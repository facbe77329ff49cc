package varplan

import (
	"basecodec/elements"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
)

// Planner assigns Variables their sections, labels, and frame offsets, and
// tracks register activation as the emitter walks a procedure body
// (spec.md §3.5, §6.4). One Planner is built fresh per procedure for frame
// planning, but module-level variables are planned once and shared.
type Planner struct {
	Elems *elements.Map

	vars map[elements.ID]*Variable

	// frameOffset is the next free byte offset in the current procedure's
	// frame; it grows as locals are planned, mirroring a simple bump
	// allocator (SPEC_FULL.md §6 item 1 "frame layout is assigned in
	// declaration order, no slot reuse").
	frameOffset int

	// next* are the bump allocators backing Activate's logical-register
	// assignment, one per isa.RegisterClass (spec.md §3.5 "two logical
	// registers").
	nextValue, nextAddress int
}

// New creates a planner over elems. Module-level variables (declared
// directly under a Module/Program element) should be planned via Plan
// before any procedure-local variables are planned in a fresh Planner
// built for that procedure.
func New(elems *elements.Map) *Planner {
	return &Planner{Elems: elems, vars: make(map[elements.ID]*Variable)}
}

// Lookup returns the plan for a declaration, or nil if it hasn't been
// planned yet.
func (p *Planner) Lookup(decl elements.ID) *Variable {
	return p.vars[decl]
}

// PlanModuleVariable buckets a module-level declaration into ro_data (const,
// known initializer), data (mutable with a known initializer), or bss
// (uninitialized, including composites default-zeroed at load) per
// spec.md §6.4, and assigns it its link-visible label.
func (p *Planner) PlanModuleVariable(declID elements.ID) *Variable {
	if v, ok := p.vars[declID]; ok {
		return v
	}

	decl := p.Elems.Get(declID).Payload.(*elements.Declaration)

	section := isa.SectionData
	switch {
	case decl.IsConst:
		section = isa.SectionROData
	case decl.Init == 0:
		section = isa.SectionBSS
	}

	v := &Variable{
		Decl:        declID,
		Symbol:      decl.Symbol.String(),
		Type:        decl.Type,
		Section:     section,
		Label:       label(decl.Symbol.Name, declID),
		PendingInit: decl.Init != 0,
	}
	p.vars[declID] = v
	return v
}

// PlanLocal assigns a stack-local declaration its frame offset, aligned to
// its type's natural alignment (spec.md §6.4 "locals are laid out in
// declaration order, each aligned to its own type"). It takes the symbol
// and pending-init flag directly rather than reading a Declaration
// payload off declID, since a procedure parameter plans a *Field element,
// not a Declaration.
func (p *Planner) PlanLocal(declID elements.ID, symbol string, t types.Type, pendingInit bool) *Variable {
	if v, ok := p.vars[declID]; ok {
		return v
	}

	align := t.Align()
	if align > 0 {
		if rem := p.frameOffset % align; rem != 0 {
			p.frameOffset += align - rem
		}
	}
	offset := p.frameOffset
	p.frameOffset += t.Size()

	v := &Variable{
		Decl:        declID,
		Symbol:      symbol,
		Type:        t,
		Section:     isa.SectionText,
		FrameOffset: offset,
		PendingInit: pendingInit,
	}
	p.vars[declID] = v
	return v
}

// PlanDeclaration is a convenience wrapper over PlanLocal for a
// *elements.Declaration element, deriving its symbol and pending-init
// flag from the payload itself.
func (p *Planner) PlanDeclaration(declID elements.ID, t types.Type) *Variable {
	decl := p.Elems.Get(declID).Payload.(*elements.Declaration)
	return p.PlanLocal(declID, decl.Symbol.String(), t, decl.Init != 0)
}

// PlanField registers a struct field's storage as sharing its owning
// variable's base address, per spec.md §6.4's composite-member addressing
// (a field has no frame slot of its own; it is always reached through
// Parent's address register plus a byte offset).
func (p *Planner) PlanField(declID, parent elements.ID, t types.Type) *Variable {
	if v, ok := p.vars[declID]; ok {
		return v
	}
	v := &Variable{Decl: declID, Type: t, Section: isa.SectionText, Parent: parent}
	p.vars[declID] = v
	return v
}

// FrameSize returns the total byte size of the frame planned so far.
func (p *Planner) FrameSize() int { return p.frameOffset }

// Activate assigns v its next free register of class, marking it live and
// clearing its usage flags. The register index is not bounded here; the
// only failure reported (as an internal compiler error, via
// ActivateTemp) is an unknown register class.
func (p *Planner) Activate(v *Variable, class isa.RegisterClass) isa.Register {
	reg := p.ActivateTemp(class)
	v.activate(class, reg)
	return reg
}

// ActivateTemp reserves the next free register of class for an unnamed
// expression intermediate (spec.md §4.5.2), without attaching it to a
// declared Variable. The caller must release it with DeactivateTemp once
// the value has been consumed.
func (p *Planner) ActivateTemp(class isa.RegisterClass) isa.Register {
	var idx int
	switch class {
	case isa.RegValue:
		idx = p.nextValue
		p.nextValue++
	case isa.RegAddress:
		idx = p.nextAddress
		p.nextAddress++
	default:
		report.ReportICE("varplan: unknown register class %d", class)
	}
	return isa.Register{Class: class, Index: idx}
}

// DeactivateTemp releases a temporary register obtained from ActivateTemp.
func (p *Planner) DeactivateTemp(class isa.RegisterClass) {
	switch class {
	case isa.RegValue:
		if p.nextValue > 0 {
			p.nextValue--
		}
	case isa.RegAddress:
		if p.nextAddress > 0 {
			p.nextAddress--
		}
	}
}

// Deactivate releases v's register of class, making it free for reuse by
// the next Activate call of that class (spec.md §3.5 "deactivated").
func (p *Planner) Deactivate(v *Variable, class isa.RegisterClass) {
	v.deactivate(class)
	switch class {
	case isa.RegValue:
		if p.nextValue > 0 {
			p.nextValue--
		}
	case isa.RegAddress:
		if p.nextAddress > 0 {
			p.nextAddress--
		}
	}
}

// MarkRead, MarkWritten, MarkAddressed, and MarkCopied record how v's
// currently activated value has been used since activation
// (SPEC_FULL.md §6 item 1), consulted by the emitter to decide whether a
// value must be reloaded or can be reused from its register.
func (p *Planner) MarkRead(v *Variable)      { v.Read = true }
func (p *Planner) MarkWritten(v *Variable)   { v.Written = true }
func (p *Planner) MarkAddressed(v *Variable) { v.Addressed = true }
func (p *Planner) MarkCopied(v *Variable)    { v.Copied = true }

// ClearPendingInit marks v's initializer as having been emitted.
func (p *Planner) ClearPendingInit(v *Variable) { v.PendingInit = false }
