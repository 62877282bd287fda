package main

import (
	"fmt"
	"os"

	"github.com/jzeiders/graphql-go-gen/internal/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:     "graphql-go-gen",
	Short:   "GraphQL code generator",
	Long:    `Extracts GraphQL operations and fragments from a directory tree and generates type-safe source, plus a standalone content-model validator generator.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Setup(quiet, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output")

	rootCmd.AddCommand(graphqlCmd)
	rootCmd.AddCommand(contentModelCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
