package emit

import (
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"basecodec/common"
	"basecodec/elements"
	"basecodec/types"
)

// goldenFixtures encodes one archive entry per test procedure (a name and
// the integer literal it returns) and one "expect.ops" entry naming the
// opcodes every emitted procedure must contain, in order, once. A single
// txtar archive keeps the whole golden set readable as one text block
// instead of scattering a file per case (SPEC_FULL.md's evaluator/emit
// fixture format).
const goldenFixtures = `
-- procs/answer.proc --
answer 42
-- procs/zero.proc --
zero 0
-- expect.ops --
push
rts
`

// TestEmitGoldenFixturesMatchExpectedOpSequence decodes the archive above
// and checks every procedure file's emitted instructions against the
// shared expect.ops entry, rather than hand-writing one assertion block
// per fixture.
func TestEmitGoldenFixturesMatchExpectedOpSequence(t *testing.T) {
	archive := txtar.Parse([]byte(goldenFixtures))

	var wantOps []string
	for _, f := range archive.Files {
		if f.Name == "expect.ops" {
			for _, line := range strings.Split(strings.TrimSpace(string(f.Data)), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					wantOps = append(wantOps, line)
				}
			}
		}
	}
	if len(wantOps) == 0 {
		t.Fatalf("golden archive is missing its expect.ops entry")
	}

	for _, f := range archive.Files {
		if !strings.HasPrefix(f.Name, "procs/") {
			continue
		}
		f := f
		t.Run(f.Name, func(t *testing.T) {
			fields := strings.Fields(strings.TrimSpace(string(f.Data)))
			if len(fields) != 2 {
				t.Fatalf("fixture %q: expected \"name value\", got %q", f.Name, f.Data)
			}
			name := fields[0]
			value, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				t.Fatalf("fixture %q: bad literal %q: %v", f.Name, fields[1], err)
			}

			e, m, b := newTestEmitter()
			progID := b.Program(1)
			modID := b.Module(progID, 0, 1, "main")

			retVal := b.IntegerLiteral(0, 1, value, false, types.U32)
			retStmt := b.Return(0, 1, retVal)
			body := b.Block(0, 1, 0)
			b.AddStmt(body, retStmt)

			procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
				Symbol: common.NewSymbol(name),
				Type: &types.ProcType{
					Results: &types.FieldMap{Fields: []types.Field{{Name: "_", Type: types.U32, Size: 4}}},
				},
				Body: body,
			})
			buildProgram(m, progID, modID, procID)

			blocks := e.EmitProgram(progID)

			last := blocks[len(blocks)-1]
			gotOps := make([]string, 0, len(last.Instrs))
			for _, in := range last.Instrs {
				gotOps = append(gotOps, in.Op.String())
			}
			if strings.Join(gotOps, ",") != strings.Join(wantOps, ",") {
				t.Fatalf("fixture %q: got op sequence %v, want %v", f.Name, gotOps, wantOps)
			}
		})
	}
}
