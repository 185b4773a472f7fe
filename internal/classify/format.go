package classify

import (
	"fmt"
	"sort"
)

// Format is a Galaxy datatype assigned to a Grinder output file.
type Format string

const (
	Text        Format = "text"
	FastqSanger Format = "fastqsanger"
	Fasta       Format = "fasta"
	Qual        Format = "qual"
)

// extensions maps file extensions (with the leading dot) to formats.
// Matching is exact and case-sensitive.
var extensions = map[string]Format{
	".txt":   Text,
	".fq":    FastqSanger,
	".fastq": FastqSanger,
	".fa":    Fasta,
	".fna":   Fasta,
	".faa":   Fasta,
	".fasta": Fasta,
	".qual":  Qual,
}

// FormatForExt returns the format for ext, or false if ext is unknown.
func FormatForExt(ext string) (Format, bool) {
	f, ok := extensions[ext]
	return f, ok
}

// ExtensionFormat is one row of the extension table.
type ExtensionFormat struct {
	Ext    string
	Format Format
}

// Extensions returns the extension table sorted by format, then extension.
func Extensions() []ExtensionFormat {
	out := make([]ExtensionFormat, 0, len(extensions))
	for ext, f := range extensions {
		out = append(out, ExtensionFormat{Ext: ext, Format: f})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Format != out[j].Format {
			return out[i].Format < out[j].Format
		}
		return out[i].Ext < out[j].Ext
	})
	return out
}

// UnknownExtensionError is returned for a matching file whose extension
// is not in the table.
type UnknownExtensionError struct {
	File string
	Ext  string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("File %s had the unknown extension %s", e.File, e.Ext)
}

// UnrecognizedNameError is returned when a base name has no trailing
// "-<type>" token.
type UnrecognizedNameError struct {
	Basename string
}

func (e *UnrecognizedNameError) Error() string {
	return fmt.Sprintf("File with basename %s did not have a recognized name", e.Basename)
}
