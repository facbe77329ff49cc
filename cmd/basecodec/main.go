// Command basecodec drives the Basecode pipeline over a project manifest:
// load the build config, build the procedures the front end handed off as
// elements, fold their constants, emit bytecode, and run the result on the
// vm fixture so `basecodec run` actually proves the bytecode it printed.
// Parsing Basecode source text into elements is an external collaborator
// (spec.md §1) this command never performs itself; in its place it builds
// the project's entry procedure straight from the element Builder, the
// same boundary the evaluator's own tests stub at.
//
// Grounded on the teacher's cmd/driver.go phase sequence, generalized past
// LLVM codegen/linking to this ISA's own emit/vm pair, and on
// logging/display.go's pterm-driven phase banners.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"

	"basecodec/buildcfg"
	"basecodec/common"
	"basecodec/elements"
	"basecodec/emit"
	"basecodec/fold"
	"basecodec/intern"
	"basecodec/isa"
	"basecodec/report"
	"basecodec/types"
	"basecodec/vm"
)

var (
	successStyle = pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	errorStyle   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColor    = pterm.FgLightCyan
)

func main() {
	root := flag.String("root", ".", "project root containing basecode.toml")
	flag.Parse()

	os.Exit(run(*root))
}

func run(root string) int {
	pterm.DefaultBigText.WithLetters(pterm.NewLettersFromStringWithStyle("basecodec", pterm.NewStyle(pterm.FgLightCyan))).Render()

	var cfg *buildcfg.Manifest
	_, err := phase("load manifest", func() error {
		m, err := buildcfg.Load(root)
		if err != nil {
			return err
		}
		infoColor.Println(fmt.Sprintf("project %q targeting vm %s", m.Name, m.VMVersion))
		cfg = m
		return nil
	})
	if err != nil {
		return 1
	}

	sink := report.NewSink()
	elemMap := elements.NewMap()
	builder := elements.NewBuilder(elemMap)
	registry := types.NewRegistry()
	interns := intern.NewTable()

	entryLabel := "_proc_" + cfg.Name + ".main"

	var blocks []*isa.Block
	_, err = phase("build demo procedure", func() error {
		blocks = buildAndEmit(cfg, builder, elemMap, registry, interns, sink)
		if sink.HasErrors() {
			report.Render(os.Stdout, sink, root, nil, "")
			return fmt.Errorf("compilation reported %d diagnostics", len(sink.Diagnostics()))
		}
		return nil
	})
	if err != nil {
		return 1
	}

	_, err = phase("emit listing", func() error {
		for _, blk := range blocks {
			fmt.Printf("%s:\n", blk.Label)
			for _, in := range blk.Instrs {
				fmt.Printf("    %s\n", in.String())
			}
		}
		return nil
	})
	if err != nil {
		return 1
	}

	var result uint64
	_, err = phase("execute", func() error {
		machine := vm.New(blocks, nil)
		r, runErr := machine.Run(entryLabel)
		if runErr != nil {
			return runErr
		}
		result = r
		return nil
	})
	if err != nil {
		return 1
	}

	successStyle.Println(" Done ")
	infoColor.Println(fmt.Sprintf("entry procedure returned %d", result))
	return 0
}

// phase runs fn under a pterm spinner, reporting success/failure and
// elapsed time the way the teacher's displayBeginPhase/displayEndPhase
// pair does, generalized to return an error instead of a bare bool.
func phase(name string, fn func() error) (struct{}, error) {
	spinner, _ := pterm.DefaultSpinner.Start(name + "...")
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	if err != nil {
		spinner.Fail(fmt.Sprintf("%s failed (%.3fs)", name, elapsed.Seconds()))
		errorStyle.Println(" Error ")
		fmt.Println(err)
		return struct{}{}, err
	}
	spinner.Success(fmt.Sprintf("%s (%.3fs)", name, elapsed.Seconds()))
	return struct{}{}, nil
}

// buildAndEmit stands in for the parser/evaluator hand-off this command
// never performs: it builds a single `proc main() -> s32 { return 42 }`
// directly against the Builder, folds its constants, and emits it, so the
// rest of the pipeline (fold, emit, vm) runs over a real element tree
// instead of a canned instruction list.
func buildAndEmit(cfg *buildcfg.Manifest, b *elements.Builder, m *elements.Map, reg *types.Registry, interns *intern.Table, sink *report.Sink) []*isa.Block {
	progID := b.Program(1)
	modID := b.Module(progID, 0, 1, cfg.Name)

	retVal := b.IntegerLiteral(0, 1, 42, false, types.S32)
	retStmt := b.Return(0, 1, retVal)
	body := b.Block(0, 1, 0)
	b.AddStmt(body, retStmt)

	procID := b.ProcedureInstance(0, 1, elements.ProcedureInstance{
		Symbol: common.NewSymbol(cfg.Name + ".main"),
		Type: &types.ProcType{
			Results: &types.FieldMap{Fields: []types.Field{{Name: "_", Type: types.S32, Size: 4}}},
		},
		Body: body,
	})
	mod := m.Get(modID).Payload.(*elements.Module)
	mod.Items = append(mod.Items, procID)
	m.AddChild(modID, procID)

	if cfg.Fold {
		fold.New(m, sink).FoldAll([]elements.ID{retVal})
	}

	return emit.New(m, reg, interns, sink).EmitProgram(progID)
}
