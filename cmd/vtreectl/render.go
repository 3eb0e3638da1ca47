package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/hosttree"
	"github.com/forgelogic/vtree/metrics"
	"github.com/forgelogic/vtree/vconfig"
	"github.com/forgelogic/vtree/vtreevdom"
)

func newRenderCommand() *cobra.Command {
	var clicks int
	var watch string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Mount the demo counter component and print the resulting tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := vconfig.Load(cmd)
			if err != nil {
				return err
			}
			vconfig.ApplyLogging(cfg)

			return runRender(cmd, clicks, watch)
		},
	}

	cmd.Flags().IntVar(&clicks, "clicks", 0, "simulate this many clicks on the demo's + button before printing")
	cmd.Flags().StringVar(&watch, "watch", "", "re-render and reprint whenever this path changes")
	return cmd
}

func runRender(cmd *cobra.Command, clicks int, watch string) error {
	registry, trampoline := events.NewRegistry()
	tree := hosttree.NewDumpTree(trampoline)
	scheduler := hosttree.NewGoScheduler()
	defer scheduler.Stop()

	component := newCounter()
	recorder := metrics.New(prometheus.NewRegistry())
	vdom := vtreevdom.New(tree, tree.Container(), scheduler, registry, component, vtreevdom.WithRecorder(recorder))
	defer vdom.Unmount()
	weak := vdom.Weak()

	if err := simulateClicks(tree, weak, clicks); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tree.String())

	if watch == "" {
		return nil
	}
	return watchAndRerender(cmd, tree, weak, watch)
}

// simulateClicks fires the demo's "+" button listener clicks times,
// re-rendering after each one so the counter's displayed value actually
// advances, the same sequence a real click followed by
// VdomWeak::schedule_render would produce.
func simulateClicks(tree *hosttree.DumpTree, weak *vtreevdom.VdomWeak, clicks int) error {
	for i := 0; i < clicks; i++ {
		root, ok := tree.FirstChild(tree.Container())
		if !ok {
			return fmt.Errorf("vtreectl: demo tree has no mounted root to click")
		}
		children := tree.ChildNodes(root)
		if len(children) == 0 {
			return fmt.Errorf("vtreectl: demo tree's root has no children")
		}
		incrementButton := children[0]
		tree.Fire(incrementButton, "click", nil)
		if err := weak.Render(); err != nil {
			return err
		}
	}
	return nil
}

// watchAndRerender re-renders and reprints the tree every time path
// changes on disk, until interrupted, using fsnotify the same way any
// fsnotify-based dev-reload tool watches a single file by watching its
// parent directory (inotify reports renames-over-the-file, e.g. from
// editors that write-then-rename, as events on the directory rather than
// the file handle itself).
func watchAndRerender(cmd *cobra.Command, tree *hosttree.DumpTree, weak *vtreevdom.VdomWeak, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("vtreectl: starting watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("vtreectl: watching %s: %w", dir, err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if err := weak.Render(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tree.String())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("vtreectl: watcher: %w", err)
		case <-sigc:
			return nil
		}
	}
}
