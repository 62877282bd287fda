// Package importlex scans raw GraphQL source text for import directives
// before it is handed to the GraphQL parser. Two forms are recognized:
//
//	import * from "path"
//	import { a, b, c } from "path"
//
// Whitespace around tokens is flexible; identifiers match [A-Za-z0-9_]+.
// Malformed directives are silently ignored — the GraphQL parser rejects
// genuinely broken files later.
package importlex

import (
	"regexp"
	"sort"
	"strings"
)

// Kind distinguishes a wildcard import from a named-list import.
type Kind int

const (
	// All is `import * from "path"`.
	All Kind = iota
	// Some is `import { a, b, c } from "path"`.
	Some
)

// Spec is one parsed import directive.
type Spec struct {
	From  string
	Kind  Kind
	Names []string // populated only when Kind == Some
}

var (
	allRe  = regexp.MustCompile(`import\s*\*\s*from\s*"([^"]*)"`)
	someRe = regexp.MustCompile(`import\s*\{\s*([A-Za-z0-9_,\s]*)\}\s*from\s*"([^"]*)"`)
	nameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

type located struct {
	start int
	spec  Spec
}

// Scan returns the ordered list of import specs found in source, in the
// order they appear in the text.
func Scan(source string) []Spec {
	var matches []located

	for _, loc := range allRe.FindAllStringSubmatchIndex(source, -1) {
		from := source[loc[2]:loc[3]]
		if from == "" {
			continue
		}
		matches = append(matches, located{start: loc[0], spec: Spec{From: from, Kind: All}})
	}

	for _, loc := range someRe.FindAllStringSubmatchIndex(source, -1) {
		rawNames := source[loc[2]:loc[3]]
		from := source[loc[4]:loc[5]]
		if from == "" {
			continue
		}
		names := splitNames(rawNames)
		if len(names) == 0 {
			continue
		}
		matches = append(matches, located{start: loc[0], spec: Spec{From: from, Kind: Some, Names: names}})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	specs := make([]Spec, len(matches))
	for i, m := range matches {
		specs[i] = m.spec
	}
	return specs
}

func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !nameRe.MatchString(p) {
			continue
		}
		names = append(names, p)
	}
	return names
}
