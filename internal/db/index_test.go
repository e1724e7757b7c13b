package db

import (
	"strings"
	"testing"
)

func TestIndexDefinition_Validate(t *testing.T) {
	valid := IndexDefinition{
		Name:   "beautyfinder:shops:status-loc:idx",
		Prefix: "beautyfinder:shops:",
		Fields: []IndexField{
			{Name: FieldStatus, Type: IndexFieldTag},
			{Name: FieldLat, Type: IndexFieldNumeric},
			{Name: FieldLon, Type: IndexFieldNumeric},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid definition rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(d *IndexDefinition)
	}{
		{"empty name", func(d *IndexDefinition) { d.Name = "" }},
		{"invalid characters", func(d *IndexDefinition) { d.Name = "bad name!" }},
		{"no fields", func(d *IndexDefinition) { d.Fields = nil }},
		{"empty field name", func(d *IndexDefinition) { d.Fields[0].Name = "" }},
		{"duplicate field", func(d *IndexDefinition) { d.Fields[1].Name = FieldStatus }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			d.Fields = append([]IndexField(nil), valid.Fields...)
			tt.mutate(&d)
			if err := d.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"shops:status-loc", true},
		{"idx_1", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
		{"star*", false},
	}
	for _, tt := range tests {
		if got := IsValidIdentifier(tt.s); got != tt.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestIndexDefinition_String(t *testing.T) {
	d := IndexDefinition{
		Name:   "idx",
		Prefix: "p:",
		Fields: []IndexField{
			{Name: "status", Type: IndexFieldTag},
			{Name: "lat", Type: IndexFieldNumeric},
		},
	}
	s := d.String()
	for _, want := range []string{"FT.CREATE idx", "PREFIX 1 p:", "status TAG", "lat NUMERIC"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
