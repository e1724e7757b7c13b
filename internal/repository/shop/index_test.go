package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/kbeauty/beautyfinder/internal/catalog"
	"github.com/kbeauty/beautyfinder/internal/db"
)

func TestIndexName(t *testing.T) {
	d := catalog.NewDescriptor("shops:status-cat-loc", []catalog.Column{catalog.ColumnCategory}, true)
	if got := IndexName(d); got != "beautyfinder:shops:status-cat-loc:idx" {
		t.Errorf("IndexName = %q", got)
	}
}

func TestBuildIndexDefinition(t *testing.T) {
	d := catalog.NewDescriptor("shops:status-cat-tier-loc",
		[]catalog.Column{catalog.ColumnCategory, catalog.ColumnTier}, true)

	def := BuildIndexDefinition(d)
	if def.Prefix != "beautyfinder:shops:" {
		t.Errorf("Prefix = %q", def.Prefix)
	}

	wantFields := []string{db.FieldStatus, "category", "partnership_tier", db.FieldLat, db.FieldLon}
	if len(def.Fields) != len(wantFields) {
		t.Fatalf("got %d fields, want %d: %+v", len(def.Fields), len(wantFields), def.Fields)
	}
	for i, name := range wantFields {
		if def.Fields[i].Name != name {
			t.Errorf("field %d = %q, want %q", i, def.Fields[i].Name, name)
		}
	}
	if def.Fields[0].Type != db.IndexFieldTag {
		t.Errorf("status should be a tag field")
	}
	if def.Fields[3].Type != db.IndexFieldNumeric || def.Fields[4].Type != db.IndexFieldNumeric {
		t.Errorf("location fields should be numeric")
	}
	if err := def.Validate(); err != nil {
		t.Errorf("built definition should validate: %v", err)
	}
}

func TestBuildIndexDefinition_NoLocation(t *testing.T) {
	d := catalog.NewDescriptor("shops:status-cat", []catalog.Column{catalog.ColumnCategory}, false)
	def := BuildIndexDefinition(d)
	for _, f := range def.Fields {
		if f.Name == db.FieldLat || f.Name == db.FieldLon {
			t.Errorf("location fields present on a non-covering index: %+v", def.Fields)
		}
	}
}

type mockIndexManager struct {
	ensured []string
	err     error
}

func (m *mockIndexManager) EnsureIndex(_ context.Context, def *db.IndexDefinition) error {
	m.ensured = append(m.ensured, def.Name)
	return m.err
}

func (m *mockIndexManager) DropIndex(_ context.Context, _ string) error { return nil }

func (m *mockIndexManager) IndexExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func TestEnsureIndexes(t *testing.T) {
	mgr := &mockIndexManager{}
	cat := catalog.Default()

	if err := EnsureIndexes(context.Background(), mgr, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mgr.ensured) != len(cat.All()) {
		t.Errorf("ensured %d indexes, want %d", len(mgr.ensured), len(cat.All()))
	}
}

func TestEnsureIndexes_Propagates(t *testing.T) {
	wantErr := errors.New("create failed")
	mgr := &mockIndexManager{err: wantErr}

	err := EnsureIndexes(context.Background(), mgr, catalog.Default())
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}
