// Command vtreectl is a small development CLI for the vtree library: it
// mounts the built-in counter demo component against an in-memory host
// tree and either prints the resulting tree (render) or the change-list
// opcodes one render pass emitted (dump-ops), optionally re-rendering
// whenever a watched file changes.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/spf13/cobra"

	"github.com/forgelogic/vtree/vconfig"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "vtreectl",
		Short:         "Inspect vtree renders from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	vconfig.BindFlags(root)

	root.AddCommand(newRenderCommand())
	root.AddCommand(newDumpOpsCommand())
	return root
}
