package categories

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape. A sequence rather than a mapping keeps order explicit.
type file struct {
	Categories []entry `yaml:"categories"`
}

type entry struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords,flow"`
}

// Load reads a category table from a YAML file.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a category table from YAML.
func Parse(r io.Reader) (Table, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("parsing categories: %w", err)
	}

	entries := make([]Category, len(doc.Categories))
	for i, e := range doc.Categories {
		entries[i] = Category{Name: e.Name, Keywords: e.Keywords}
	}
	return New(entries...)
}

// Marshal encodes a table as YAML.
func Marshal(t Table) ([]byte, error) {
	doc := file{Categories: make([]entry, t.Len())}
	for i := range t.Len() {
		c := t.At(i)
		kw := c.Keywords
		if kw == nil {
			kw = []string{}
		}
		doc.Categories[i] = entry{Name: c.Name, Keywords: kw}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling categories: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling categories: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes a table to a YAML file.
func Save(path string, t Table) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}
