package script

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Document is the YAML layout of a script.
type Document struct {
	Language   string  `yaml:"language"`
	TotalLines int     `yaml:"total_lines"`
	Lines      []Entry `yaml:"lines"`
}

// Entry is a single line of a YAML script.
type Entry struct {
	ID   int    `yaml:"id"`
	Text string `yaml:"text"`
}

// WriteYAML writes lines as a YAML document.
func WriteYAML(w io.Writer, lines []SourceLine, lang Language) error {
	doc := Document{
		Language:   lang.Tag,
		TotalLines: len(lines),
		Lines:      make([]Entry, 0, len(lines)),
	}
	for _, line := range lines {
		doc.Lines = append(doc.Lines, Entry{ID: line.Index, Text: line.Text})
		doc.TotalLines = max(doc.TotalLines, line.Index)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("closing YAML encoder: %w", err)
	}
	return nil
}

// ReadYAML reads a YAML script. The returned header holds the total line
// count of the document, or the highest entry id if no total is set. Lines
// are returned sorted by id, ids without an entry are left out. Entries of a
// document without a language use lang.
func ReadYAML(r io.Reader, limits Limits, lang Language) ([]SourceLine, Header, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Header{}, fmt.Errorf("decoding YAML: %w", err)
	}

	if doc.Language != "" {
		var err error
		lang, err = ParseLanguage(doc.Language)
		if err != nil {
			return nil, Header{}, err
		}
	}

	declared := doc.TotalLines
	if declared == 0 {
		for _, entry := range doc.Lines {
			declared = max(declared, entry.ID)
		}
	}
	header := limits.Header(declared)

	seen := make(map[int]struct{}, len(doc.Lines))
	lines := make([]SourceLine, 0, min(len(doc.Lines), header.Lines))
	for i, entry := range doc.Lines {
		if entry.ID < 1 || entry.ID > declared {
			return nil, Header{}, fmt.Errorf("entry %d has id %d outside of line range 1-%d", i+1, entry.ID, declared)
		}
		if _, ok := seen[entry.ID]; ok {
			return nil, Header{}, fmt.Errorf("entry %d has duplicate id %d", i+1, entry.ID)
		}
		seen[entry.ID] = struct{}{}

		// lines past a clamped count are dropped like in text scripts
		if entry.ID > header.Lines {
			continue
		}
		lines = append(lines, SourceLine{
			Index:    entry.ID,
			Language: lang,
			Text:     entry.Text,
		})
	}

	slices.SortFunc(lines, func(a, b SourceLine) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return lines, header, nil
}
