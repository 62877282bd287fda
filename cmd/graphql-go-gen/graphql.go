package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jzeiders/graphql-go-gen/internal/docload"
	"github.com/jzeiders/graphql-go-gen/internal/emit"
	"github.com/jzeiders/graphql-go-gen/internal/importresolve"
	"github.com/jzeiders/graphql-go-gen/internal/output"
	"github.com/jzeiders/graphql-go-gen/internal/resolve"
	"github.com/jzeiders/graphql-go-gen/internal/schemaload"
	"github.com/jzeiders/graphql-go-gen/pkg/schema"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

const defaultSchemaURL = "https://storefront.example.com/graphql"

var (
	includeRules         []string
	bearerToken          string
	allowUnusedFragments bool
	jsSuffix             bool
	schemaSource         string
)

var graphqlCmd = &cobra.Command{
	Use:   "graphql <directory>",
	Short: "Generate types for .graphql documents under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraphql(args[0])
	},
}

func init() {
	graphqlCmd.Flags().StringSliceVarP(&includeRules, "include", "I", nil, "NAME=DIR=PREFIX import abbreviation, repeatable")
	graphqlCmd.Flags().StringVarP(&bearerToken, "token", "t", "", "bearer token for introspection/SDL fetch")
	graphqlCmd.Flags().BoolVar(&allowUnusedFragments, "allow-unused-fragments", false, "do not fail on fragments with no spread")
	graphqlCmd.Flags().BoolVar(&jsSuffix, "js-suffix", false, "append .js to relative import specifiers")
	graphqlCmd.Flags().StringVar(&schemaSource, "schema", defaultSchemaURL, "schema source: local file, raw SDL URL, or introspection endpoint")
}

func runGraphql(dir string) error {
	ctx := context.Background()

	rules, err := importresolve.ParseIncludeRules(includeRules)
	if err != nil {
		return err
	}

	client := schemaload.NewHTTPClient()
	astSchema, err := schemaload.Load(ctx, client, schemaSource, schemaload.Options{
		BearerToken: bearerToken,
		CacheTTL:    5 * time.Minute,
		MaxRetries:  2,
	})
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	loadedSchema := schema.NewSchema(astSchema, schemaSource)
	log.Debug().Str("source", schemaSource).Str("hash", loadedSchema.Hash()).Msg("schema loaded")
	schemaAST := loadedSchema.Raw()

	docs, importsByFile, err := docload.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}

	merged, err := docload.Merge(docs)
	if err != nil {
		return err
	}

	if err := docload.Validate(schemaAST, merged, docload.Options{AllowUnusedFragments: allowUnusedFragments}); err != nil {
		return err
	}

	bundle, err := importresolve.Resolve(schemaAST, importsByFile, importresolve.Options{Rules: rules})
	if err != nil {
		return fmt.Errorf("resolving imports: %w", err)
	}

	rctx, err := resolve.Resolve(schemaAST, merged, nil, bundle)
	if err != nil {
		return fmt.Errorf("resolving types: %w", err)
	}

	const ext = "ts"
	opts := emit.Options{JSExtension: jsSuffix, UseOptionalMarker: false}

	sink := output.NewSink(dir, quiet)
	before, err := output.Snapshot(dir, "."+ext)
	if err != nil {
		return err
	}

	typesContent := emit.RenderTypesModule(schemaAST, rctx, bundle, dir, nil, opts)
	if err := sink.WriteIfChanged(fmt.Sprintf("types.%s", ext), []byte(typesContent)); err != nil {
		return err
	}

	for _, name := range rctx.SortedFragmentNames() {
		entry := rctx.Fragments[name]
		body := fragmentSourceText(entry.AST)
		content := emit.RenderFragmentFile(name, entry, body, opts)
		if err := sink.WriteIfChanged(filepath.Join("fragments", fmt.Sprintf("%s.%s", name, ext)), []byte(content)); err != nil {
			return err
		}
	}

	for _, name := range rctx.SortedOperationNames() {
		entry := rctx.Operations[name]
		body := operationSourceText(entry.AST)
		content := emit.RenderOperationFile(name, entry, body, rctx, bundle, filepath.Join(dir, "operations"), opts)
		if err := sink.WriteIfChanged(filepath.Join("operations", fmt.Sprintf("%s.%s", name, ext)), []byte(content)); err != nil {
			return err
		}
	}

	if err := sink.ReconcileOrphans(before); err != nil {
		return err
	}

	log.Info().Int("fragments", len(rctx.Fragments)).Int("operations", len(rctx.Operations)).Msg("generation complete")
	return nil
}

// fragmentSourceText renders a fragment definition back to GraphQL source
// text. A definition's own Position only spans its first token (the
// "fragment" keyword), so the full body cannot be recovered by slicing the
// original document's raw text; the formatter reconstructs it from the AST
// instead.
func fragmentSourceText(frag *ast.FragmentDefinition) string {
	doc := &ast.QueryDocument{Fragments: ast.FragmentDefinitionList{frag}}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return buf.String()
}

// operationSourceText renders an operation definition back to GraphQL source
// text, for the same reason fragmentSourceText does.
func operationSourceText(op *ast.OperationDefinition) string {
	doc := &ast.QueryDocument{Operations: ast.OperationList{op}}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return buf.String()
}
