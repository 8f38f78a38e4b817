// Package source holds the compiler's input text, addressable by
// (file, line, column) so every diagnostic can point at the original
// character that triggered it.
//
// The original Rust implementation kept this as a pair of global,
// mutex-guarded vectors (CODES, FILE_NAMES) appended to as each file was
// read. Per the single-threaded, no-global-singleton rewrite guidance,
// this package carries the same data as an explicit value threaded
// through the pipeline instead.
package source

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// File is one source file's content, split into lines and kept
// read-only after construction. Lines are 1-indexed from the caller's
// perspective; index 0 of raw is an unused placeholder so that
// Line(n) can index directly by the 1-based line number used
// throughout diagnostics and token positions.
type File struct {
	Name string
	raw  []string
}

// Line returns the 1-indexed source line n, or "" if n is out of range.
func (f *File) Line(n int) string {
	if n < 1 || n >= len(f.raw) {
		return ""
	}
	return f.raw[n]
}

// LineCount reports how many lines f has.
func (f *File) LineCount() int {
	if len(f.raw) == 0 {
		return 0
	}
	return len(f.raw) - 1
}

// Set is the registry of every file participating in one compilation.
// Files are appended in the order they are loaded; a file's index into
// Set is what token.Position.File ultimately names (by filename, not
// index, since diagnostics print it directly).
type Set struct {
	files []*File
}

// NewSet returns an empty source registry.
func NewSet() *Set {
	return &Set{}
}

// AddString registers text under name, splitting it on "\n", without
// touching the filesystem. Unlike AddFile, a trailing newline yields a
// final empty line and "\r" is kept. Used by tests and by
// compiler.Unit.AddSource.
func (s *Set) AddString(name, text string) *File {
	f := &File{Name: name, raw: splitLines(text)}
	s.files = append(s.files, f)
	return f
}

// AddFile reads name from disk and registers its contents.
func (s *Set) AddFile(name string) (*File, error) {
	fh, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("source: cannot open %s: %w", name, err)
	}
	defer fh.Close()

	raw := []string{""} // index 0 placeholder, lines are 1-indexed
	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		raw = append(raw, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("source: reading %s: %w", name, err)
	}

	f := &File{Name: name, raw: raw}
	s.files = append(s.files, f)
	return f, nil
}

// File looks up a previously registered file by name.
func (s *Set) File(name string) *File {
	for _, f := range s.files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Files returns every registered file, in registration order.
func (s *Set) Files() []*File {
	return s.files
}

func splitLines(text string) []string {
	raw := []string{""}
	raw = append(raw, strings.Split(text, "\n")...)
	return raw
}
