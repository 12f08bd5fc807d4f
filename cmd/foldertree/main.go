// Command foldertree drives a single in-process tree.Tree from the
// command line: one-shot create/remove/list/move invocations, an
// interactive REPL, or a concurrency stress run.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/foldertree/foldertree/log/logadapter"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel) // the adapter logs at Debug; topics do the gating

	root := newRootCmd(logadapter.New(logger, 0))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
