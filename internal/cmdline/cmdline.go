// Package cmdline is the cobra command tree for the folidity CLI, structured
// the way cmd/cue/cmd's newRootCmd is: a root command wrapping
// subcommands, with a thin Command wrapper carrying shared state across
// RunE callbacks (spec §1 CLI surface).
package cmdline

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"

	"github.com/folidity-lang/folidity/internal/config"
)

// flagTimeout names the persistent --timeout override, mirroring the
// teacher's flagName-constant-per-flag convention (cmd/cue/cmd/flags.go).
const flagTimeout = "timeout"

// addGlobalFlags registers the flags every subcommand inherits, grounded on
// cmd/cue/cmd/flags.go's addGlobalFlags.
func addGlobalFlags(f *pflag.FlagSet) {
	f.Int(flagTimeout, 0,
		"override the solver timeout in milliseconds (0: use folidity.yaml or the default)")
}

// ErrDiagnostics is the sentinel returned by check/verify/compile when
// Error-level diagnostics were reported. No caller compares against it:
// Main maps any returned error, this one included, to exit code 1.
var ErrDiagnostics = xerrors.New("diagnostics present, refusing to continue")

// Command wraps a cobra.Command the way cmd/cue/cmd.Command does, giving
// RunE callbacks a place to stash output streams without threading extra
// parameters through cobra.
type Command struct {
	*cobra.Command
	root *cobra.Command
}

func (c *Command) Stdout() io.Writer {
	return c.root.OutOrStdout()
}

func (c *Command) Stderr() io.Writer {
	return c.root.ErrOrStderr()
}

type runFunc func(c *Command, args []string) error

func mkRunE(root *Command, f runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return f(root, args)
	}
}

// NewRootCommand builds the folidity command tree: new, check, verify,
// compile (spec §1 CLI surface).
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "folidity",
		Short:         "folidity compiles state-oriented smart contracts to TEAL",
		Long:          `folidity parses, resolves, verifies, and lowers .fol contract source to Algorand TEAL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: root, root: root}

	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newNewCmd(c),
		newCheckCmd(c),
		newVerifyCmd(c),
		newCompileCmd(c),
	)
	return root
}

// Main runs the CLI and returns a process exit code (spec §6: 0 on success,
// 1 otherwise).
func Main(args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func loadConfig(c *Command, dir string) (config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return cfg, err
	}
	if timeout, _ := c.root.PersistentFlags().GetInt(flagTimeout); timeout > 0 {
		cfg.SolverTimeoutMS = timeout
	}
	return cfg, nil
}
