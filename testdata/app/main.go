package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "app",
		Short: "Serve and inspect sample data",
	}
	serve := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		Short:   "Start the server",
		RunE:    func(*cobra.Command, []string) error { return nil },
	}
	serve.Flags().StringP("listen", "l", ":8080", "listen on `ADDR`")
	root.AddCommand(serve)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
