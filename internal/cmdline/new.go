package cmdline

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/folidity-lang/folidity/internal/config"
)

const scaffoldSource = `model Account {
  balance: int
} st [balance >= 0]
`

func newNewCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "scaffold a contract file and folidity.yaml in path",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, doNew),
	}
	return cmd
}

func doNew(c *Command, args []string) error {
	dir := args[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	srcPath := filepath.Join(dir, "contract.fol")
	if _, err := os.Stat(srcPath); err == nil {
		return errors.Errorf("%s already exists", srcPath)
	}
	if err := os.WriteFile(srcPath, []byte(scaffoldSource), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", srcPath)
	}

	if err := config.Write(dir, config.Default()); err != nil {
		return err
	}

	return nil
}
