package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/forgelogic/vtree/cachedset"
	"github.com/forgelogic/vtree/changelist"
	"github.com/forgelogic/vtree/diff"
	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/metrics"
	"github.com/forgelogic/vtree/render"
	"github.com/forgelogic/vtree/vconfig"
	"github.com/forgelogic/vtree/vnode"
)

func newDumpOpsCommand() *cobra.Command {
	var clicks int

	cmd := &cobra.Command{
		Use:   "dump-ops",
		Short: "Print the change-list opcodes one render of the demo component emits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := vconfig.Load(cmd)
			if err != nil {
				return err
			}
			vconfig.ApplyLogging(cfg)

			return runDumpOps(cmd, clicks)
		},
	}

	cmd.Flags().IntVar(&clicks, "clicks", 0, "apply this many increments to the demo's count before diffing")
	return cmd
}

func runDumpOps(cmd *cobra.Command, clicks int) error {
	component := newCounter()
	for i := 0; i < clicks; i++ {
		component.increment()
	}

	cached := cachedset.New()
	registry, _ := events.NewRegistry()
	cx := render.New(cached)

	old := vnode.Element(vnode.None, "div", nil, nil, nil, "")
	newRoot := component.Render(cx)

	state := changelist.NewPersistentState()
	roots := make(diff.CacheRoots)
	diff.Diff(cached, state.Builder(), registry, old, newRoot, roots)

	recorder := metrics.New(prometheus.NewRegistry())
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header([]string{"opcode", "args"})

	count := 0
	state.Emitter().EachInstructionSequence(func(words []uint32) {
		i := 0
		for i < len(words) {
			op := changelist.Opcode(words[i])
			i++
			arity := changelist.Arity(op)
			args := words[i : i+arity]
			i += arity
			count++
			_ = table.Append([]string{changelist.OpcodeName(op), fmt.Sprint(args)})
		}
	})
	recorder.ObserveOpcodes(count)

	return table.Render()
}
