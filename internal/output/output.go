// Package output implements the write-if-changed file sink and orphan
// detection (Component H): nothing is rewritten unless its bytes actually
// differ, and any previously-generated file no longer produced by the
// current run is flagged rather than silently left behind.
package output

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// Sink accumulates the set of files a generation run writes, to diff
// against the pre-run Snapshot afterward.
type Sink struct {
	dir       string
	written   map[string]bool
	quiet     bool
	confirmIn *bufio.Reader
}

// NewSink returns a Sink rooted at dir. quiet disables the interactive
// orphan-file prompt, auto-renaming orphans instead.
func NewSink(dir string, quiet bool) *Sink {
	return &Sink{dir: dir, written: make(map[string]bool), quiet: quiet, confirmIn: bufio.NewReader(os.Stdin)}
}

// WriteIfChanged writes content to relPath (relative to the sink's root)
// only if the file doesn't exist or its current bytes differ, and records
// relPath as produced by this run regardless.
func (s *Sink) WriteIfChanged(relPath string, content []byte) error {
	full := filepath.Join(s.dir, relPath)
	s.written[filepath.Clean(full)] = true

	existing, err := os.ReadFile(full)
	if err == nil && bytes.Equal(existing, content) {
		log.Debug().Str("file", relPath).Msg("unchanged, skipping write")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	log.Info().Str("file", relPath).Msg("wrote")
	return nil
}

// Snapshot walks dir (before generation begins) and returns the set of
// existing generated file paths, used as the baseline for orphan detection.
func Snapshot(dir string, suffix string) (map[string]bool, error) {
	existing := make(map[string]bool)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == suffix {
			existing[filepath.Clean(path)] = true
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshotting %s: %w", dir, err)
	}
	return existing, nil
}

// ReconcileOrphans compares before (the pre-run snapshot) against the
// sink's written set and handles every file present in before but not
// rewritten this run: in quiet mode it renames straight to ".unused";
// otherwise it asks the user once per file.
func (s *Sink) ReconcileOrphans(before map[string]bool) error {
	var orphans []string
	for path := range before {
		if !s.written[path] {
			orphans = append(orphans, path)
		}
	}
	sort.Strings(orphans)

	for _, path := range orphans {
		if s.quiet {
			if err := renameUnused(path); err != nil {
				return err
			}
			continue
		}
		if s.confirmRename(path) {
			if err := renameUnused(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func renameUnused(path string) error {
	target := path + ".unused"
	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("renaming orphaned file %s: %w", path, err)
	}
	log.Warn().Str("file", path).Str("renamed_to", target).Msg("no longer generated, renamed")
	return nil
}

func (s *Sink) confirmRename(path string) bool {
	fmt.Fprintf(os.Stderr, "%s is no longer generated by this run. Rename to %s.unused? [y/N] ", path, path)
	line, _ := s.confirmIn.ReadString('\n')
	switch line {
	case "y\n", "Y\n", "yes\n":
		return true
	default:
		return false
	}
}
