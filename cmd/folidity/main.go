// Command folidity is the CLI entrypoint: new, check, verify, compile
// (spec §1 CLI surface).
package main

import (
	"os"

	"github.com/folidity-lang/folidity/internal/cmdline"
)

func main() {
	os.Exit(cmdline.Main(os.Args[1:]))
}
