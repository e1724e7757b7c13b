package db

import (
	"errors"
	"strconv"
	"strings"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldTag is an exact-match string field.
	IndexFieldTag IndexFieldType = iota
	// IndexFieldNumeric is a range-filterable numeric field.
	IndexFieldNumeric
)

// IndexField describes a single column in a composite index schema.
// Column order is significant: it is the prefix order of the index.
type IndexField struct {
	Name string
	Type IndexFieldType
}

// IndexDefinition is a complete composite index definition. Drivers
// translate it to FT.CREATE or CREATE INDEX.
type IndexDefinition struct {
	Name   string
	Prefix string
	Fields []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}

// String returns a debug representation resembling the FT.CREATE command.
func (idx *IndexDefinition) String() string {
	parts := []string{"FT.CREATE", idx.Name}
	if idx.Prefix != "" {
		parts = append(parts, "PREFIX", "1", idx.Prefix)
	}
	parts = append(parts, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		parts = append(parts, f.Name)
		switch f.Type {
		case IndexFieldTag:
			parts = append(parts, "TAG")
		case IndexFieldNumeric:
			parts = append(parts, "NUMERIC")
		}
	}
	return strings.Join(parts, " ")
}
