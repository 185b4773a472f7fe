// Package classify renames Grinder output files so Galaxy picks them up as
// "multiple output files" datasets.
//
// Grinder names its outputs <prefix>[-<lib>]-<type>.<ext>, for example
//
//	grinder-ranks.txt
//	grinder-1-reads.fa
//	grinder-2-reads.qual
//
// and Galaxy expects primary_<id>_<name>_visible_<format> in the same
// directory.
package classify

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/deixis/grinderwrap/internal/logging"
)

var (
	libNumRe  = regexp.MustCompile(`-(\d+)-`)
	libTypeRe = regexp.MustCompile(`-(\w+)$`)
)

// Entry is a classified directory entry.
type Entry struct {
	Name    string // file name as listed
	Base    string // name without extension
	Ext     string
	Format  Format
	LibNum  string // digits, empty when the file carries no library number
	LibType string
}

// DatasetName is the Galaxy dataset name: [lib<N>-]<type>.
func (e Entry) DatasetName() string {
	if e.LibNum == "" {
		return e.LibType
	}
	return "lib" + e.LibNum + "-" + e.LibType
}

// Target is the canonical file name for the entry under id.
func (e Entry) Target(id string) string {
	return fmt.Sprintf("primary_%s_%s_visible_%s", id, e.DatasetName(), e.Format)
}

// Matches reports whether name belongs to the run identified by id and is
// not already in canonical form.
func Matches(name, id string) bool {
	return strings.HasPrefix(name, id) && !IsCanonical(name, id)
}

// IsCanonical reports whether name already has the form produced by Target.
func IsCanonical(name, id string) bool {
	rest, ok := strings.CutPrefix(name, "primary_"+id+"_")
	if !ok {
		return false
	}
	i := strings.LastIndex(rest, "_visible_")
	if i <= 0 {
		return false
	}
	_, known := formats[Format(rest[i+len("_visible_"):])]
	return known
}

var formats = map[Format]bool{Text: true, FastqSanger: true, Fasta: true, Qual: true}

// splitExt splits name at its last dot. Leading dots belong to the base,
// so ".reads" has no extension and "..reads.fa" has ".fa".
func splitExt(name string) (base, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || strings.TrimLeft(name[:i], ".") == "" {
		return name, ""
	}
	return name[:i], name[i:]
}

// Parse classifies a file name. It does not check the id prefix.
func Parse(name string) (Entry, error) {
	base, ext := splitExt(name)

	format, ok := FormatForExt(ext)
	if !ok {
		return Entry{}, &UnknownExtensionError{File: name, Ext: ext}
	}

	e := Entry{Name: name, Base: base, Ext: ext, Format: format}
	if m := libNumRe.FindStringSubmatch(base); m != nil {
		e.LibNum = m[1]
	}

	m := libTypeRe.FindStringSubmatch(base)
	if m == nil {
		return Entry{}, &UnrecognizedNameError{Basename: base}
	}
	e.LibType = m[1]
	if format == Qual {
		e.LibType = string(Qual)
	}
	return e, nil
}

// Move is a single planned or performed rename.
type Move struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Format      Format `json:"format"`
	Name        string `json:"name"`
}

// Classifier renames the Grinder outputs of one run.
type Classifier struct {
	Dir    string
	ID     string
	DryRun bool      // plan only; nothing is renamed
	Out    io.Writer // receives "moving <src> to <dst>" lines; nil discards
	Logger *slog.Logger
}

// Result lists what a pass did before it finished or halted.
type Result struct {
	Moves   []Move
	Skipped []string
}

// Run makes a single pass over Dir. The first classification or rename
// error halts the pass; renames already performed are kept and returned
// in the Result together with the error.
func (c *Classifier) Run() (*Result, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("empty output id")
	}
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.Dir, err)
	}

	log := c.Logger
	if log == nil {
		log = logging.NewNop()
	}
	out := c.Out
	if out == nil {
		out = io.Discard
	}

	res := &Result{}
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || !Matches(name, c.ID) {
			res.Skipped = append(res.Skipped, name)
			continue
		}

		e, err := Parse(name)
		if err != nil {
			return res, err
		}

		mv := Move{
			Source:      filepath.Join(c.Dir, name),
			Destination: filepath.Join(c.Dir, e.Target(c.ID)),
			Format:      e.Format,
			Name:        e.DatasetName(),
		}
		log.Debug("classified", "file", name, "format", e.Format, "name", mv.Name)

		if c.DryRun {
			res.Moves = append(res.Moves, mv)
			continue
		}

		fmt.Fprintf(out, "moving %s to %s\n", mv.Source, mv.Destination)
		if err := os.Rename(mv.Source, mv.Destination); err != nil {
			return res, err
		}
		res.Moves = append(res.Moves, mv)
	}
	return res, nil
}
