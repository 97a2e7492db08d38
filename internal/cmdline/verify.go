package cmdline

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/folidity-lang/folidity/internal/verifier"
)

func newVerifyCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <path>",
		Short: "resolve and formally verify a contract's bounds",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, doVerify),
	}
	return cmd
}

func doVerify(c *Command, args []string) error {
	src, filename, contract, bus, err := loadAndResolve(args[0])
	if err != nil {
		return err
	}
	if bus.HasErrors() {
		return report(c, src, filename, bus)
	}

	cfg, err := loadConfig(c, filepath.Dir(args[0]))
	if err != nil {
		return err
	}
	verifier.VerifyWithTimeout(contract, cfg.SolverTimeoutMS)
	return report(c, src, filename, bus)
}
