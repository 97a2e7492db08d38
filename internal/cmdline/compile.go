package cmdline

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/folidity-lang/folidity/internal/emitter"
	"github.com/folidity-lang/folidity/internal/verifier"
)

func newCompileCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <path>",
		Short: "resolve, verify, and lower a contract to TEAL",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, doCompile),
	}
	return cmd
}

// doCompile runs every pass and, only when zero Error-level diagnostics
// remain, invokes the emitter and writes build/approval.teal and
// build/clear.teal (spec §1 CLI surface, §6 exit codes).
func doCompile(c *Command, args []string) error {
	src, filename, contract, bus, err := loadAndResolve(args[0])
	if err != nil {
		return err
	}
	if bus.HasErrors() {
		return report(c, src, filename, bus)
	}

	dir := filepath.Dir(args[0])
	cfg, err := loadConfig(c, dir)
	if err != nil {
		return err
	}

	verifier.VerifyWithTimeout(contract, cfg.SolverTimeoutMS)
	if err := report(c, src, filename, bus); err != nil {
		return err
	}

	e := emitter.NewTealEmitter(bus)
	artifacts, emitErr := e.Emit(contract)
	if emitErr != nil {
		diagErr := report(c, src, filename, bus)
		if diagErr != nil {
			return diagErr
		}
		return errors.Wrap(emitErr, "emit")
	}

	buildDir := filepath.Join(dir, cfg.BuildDir)
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", buildDir)
	}
	if err := os.WriteFile(filepath.Join(buildDir, "approval.teal"), artifacts.ApprovalProgram, 0o644); err != nil {
		return errors.Wrap(err, "writing approval.teal")
	}
	if err := os.WriteFile(filepath.Join(buildDir, "clear.teal"), artifacts.ClearProgram, 0o644); err != nil {
		return errors.Wrap(err, "writing clear.teal")
	}
	return nil
}
