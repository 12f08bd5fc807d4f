package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read create/remove/list/move/stat commands from stdin, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runRepl(a *app, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := dispatch(a, out, fields); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading repl input")
	}
	return nil
}

func dispatch(a *app, out io.Writer, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "create":
		if len(fields) != 2 {
			return errors.New("usage: create <path>")
		}
		if err := a.tr.Create(fields[1]); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")
	case "remove":
		if len(fields) != 2 {
			return errors.New("usage: remove <path>")
		}
		if err := a.tr.Remove(fields[1]); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")
	case "list":
		if len(fields) != 2 {
			return errors.New("usage: list <path>")
		}
		rendered, err := a.tr.List(fields[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
	case "move":
		if len(fields) != 3 {
			return errors.New("usage: move <source> <target>")
		}
		if err := a.tr.Move(fields[1], fields[2]); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")
	case "stat":
		if len(fields) != 2 {
			return errors.New("usage: stat <path>")
		}
		info, err := a.tr.Stat(fields[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "name=%q root=%v children=%d\n", info.Name, info.IsRoot, info.ChildCount)
	default:
		return errors.Errorf("unknown command %q", fields[0])
	}
	return nil
}
