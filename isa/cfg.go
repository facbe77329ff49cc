package isa

// BuildCFG computes predecessor/successor edges for an ordered list of
// blocks, in place. Blocks are linked the way the emitter actually lays
// them out: an unconditional jump or conditional branch links to its
// named target; a conditional branch additionally falls through to the
// next block in program order; an open (non-terminated) block falls
// through to the next block; a return/exit block has no successors.
//
// This is run once, after emission finishes (spec.md §4.5.1 has no
// explicit "finalize CFG" step, but §6.2 requires the edges on the
// emitted blocks and §8.1 requires them to be mutually consistent).
func BuildCFG(blocks []*Block) {
	byLabel := make(map[string]*Block, len(blocks))
	for _, b := range blocks {
		b.Succs = nil
		b.Preds = nil
		byLabel[b.Label] = b
	}

	for i, b := range blocks {
		for _, succLabel := range successorsOf(b, blocks, i) {
			b.Succs = append(b.Succs, succLabel)
			if succ, ok := byLabel[succLabel]; ok {
				succ.Preds = append(succ.Preds, b.Label)
			}
		}
	}
}

func successorsOf(b *Block, blocks []*Block, index int) []string {
	if len(b.Instrs) == 0 {
		return fallthroughTo(blocks, index)
	}

	last := b.Instrs[len(b.Instrs)-1]

	switch last.Op {
	case OpJumpDirect:
		if target, ok := last.JumpTarget(); ok {
			return []string{target}
		}
		return nil
	case OpBZ, OpBNZ:
		var succs []string
		if target, ok := last.JumpTarget(); ok {
			succs = append(succs, target)
		}
		return append(succs, fallthroughTo(blocks, index)...)
	case OpRts, OpExit:
		return nil
	default:
		return fallthroughTo(blocks, index)
	}
}

func fallthroughTo(blocks []*Block, index int) []string {
	if index+1 < len(blocks) {
		return []string{blocks[index+1].Label}
	}
	return nil
}
