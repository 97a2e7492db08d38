package cmdline

import "github.com/spf13/cobra"

func newCheckCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "parse and resolve a contract, reporting diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, doCheck),
	}
	return cmd
}

func doCheck(c *Command, args []string) error {
	src, filename, _, bus, err := loadAndResolve(args[0])
	if err != nil {
		return err
	}
	return report(c, src, filename, bus)
}
