package main

import (
	"github.com/spf13/cobra"

	flog "github.com/foldertree/foldertree/log"
	"github.com/foldertree/foldertree/log/logadapter"
	"github.com/foldertree/foldertree/tree"
)

// app bundles the tree instance every subcommand operates on, along with
// the logger adapter so --trace/--verdicts can reconfigure it after flag
// parsing but before the tree is constructed.
type app struct {
	logger *logadapter.Logrus
	tr     *tree.Tree

	traceEnabled   bool
	verdictEnabled bool
}

func newRootCmd(logger *logadapter.Logrus) *cobra.Command {
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:   "foldertree",
		Short: "Operate on an in-memory hierarchical folder tree",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var topics flog.Topics
			if a.traceEnabled {
				topics |= flog.TopicTrace
			}
			if a.verdictEnabled {
				topics |= flog.TopicVerdict
			}
			a.logger.SetEnabled(topics)
			a.tr = tree.New(tree.WithLogger(a.logger))
		},
	}
	root.PersistentFlags().BoolVar(&a.traceEnabled, "trace", false, "log every hand-over-hand traversal step")
	root.PersistentFlags().BoolVar(&a.verdictEnabled, "verdicts", false, "log the outcome of every operation")

	root.AddCommand(
		newCreateCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newMoveCmd(a),
		newStatCmd(a),
		newReplCmd(a),
		newStressCmd(a),
	)
	return root
}
