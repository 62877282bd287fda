package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jzeiders/graphql-go-gen/internal/contentmodel"
	"github.com/jzeiders/graphql-go-gen/internal/schemaload"
	"github.com/spf13/cobra"
)

const defaultContentModelAPI = "https://storefront.example.com/relay"

var (
	contentModelInputs []string
	contentModelOutput string
	contentModelAPI    string
)

var contentModelCmd = &cobra.Command{
	Use:   "content-model",
	Short: "Generate runtime validators from content-model JSON schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runContentModel()
	},
}

func init() {
	contentModelCmd.Flags().StringSliceVarP(&contentModelInputs, "input", "i", nil, "one or more JSON schema files")
	contentModelCmd.Flags().StringVarP(&contentModelOutput, "output", "o", "", "output file, or - for stdout")
	contentModelCmd.Flags().StringVar(&contentModelAPI, "api", defaultContentModelAPI, "built-in schema batch-lookup endpoint")
	contentModelCmd.MarkFlagRequired("input")
	contentModelCmd.MarkFlagRequired("output")
}

func runContentModel() error {
	var schemas []contentmodel.Schema

	for _, path := range contentModelInputs {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		parsed, err := contentmodel.ParseSchemas(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		schemas = append(schemas, parsed...)
	}

	names := make([]string, len(schemas))
	for i, s := range schemas {
		names[i] = s.Name
	}
	client := schemaload.NewHTTPClient()
	builtins := contentmodel.FetchBuiltins(context.Background(), client, contentModelAPI, names)
	schemas = append(schemas, builtins...)

	out := contentmodel.RenderValidatorsModule(schemas)

	if contentModelOutput == "-" {
		fmt.Print(out)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(contentModelOutput), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(contentModelOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", contentModelOutput, err)
	}
	return nil
}
