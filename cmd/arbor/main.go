// Arbor is a demonstration of the arbor UI tree framework: a list editor that
// runs in the terminal. A running instance can be inspected with -query.
package main

import (
	"os"

	"arbor.elv.sh/pkg/demo"
	"arbor.elv.sh/pkg/inspect"
	"arbor.elv.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(inspect.QueryProgram{}, demo.Program{})))
}
