package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var flags = newFlagSet()

var valueCmd cobra.Command

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cobraapp",
		Short: "Manage sample items",
		Long:  "cobraapp manages a list of sample items.",
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "print progress")

	list := &cobra.Command{
		Use:     "list [pattern]",
		Aliases: []string{"ls"},
		Short:   "List items",
		RunE:    func(*cobra.Command, []string) error { return nil },
	}
	list.Flags().Int("limit", 10, "show at most `N` items")
	root.AddCommand(list)
	return root
}

func newRootCmdE() (*cobra.Command, error) {
	return newRootCmd(), nil
}

func newNamed(name string) *cobra.Command {
	return &cobra.Command{Use: name}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("cobraapp-flags", pflag.ContinueOnError)
	fs.String("config", "", "read settings from `FILE`")
	return fs
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
