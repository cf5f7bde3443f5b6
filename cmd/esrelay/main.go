package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/esrelay/internal/config"
	"github.com/kailas-cloud/esrelay/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var env string

	root := &cobra.Command{
		Use:          "esrelay",
		Short:        "HTTP relay for index and document operations on Elasticsearch",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), resolveEnv(env))
		},
	}
	root.PersistentFlags().StringVar(&env, "env", "", "config environment (overrides ENV, default local)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), resolveEnv(env))
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})

	return root
}

func resolveEnv(flag string) string {
	if flag != "" {
		return flag
	}
	return config.GetEnv()
}
