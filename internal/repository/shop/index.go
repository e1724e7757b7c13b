package shop

import (
	"context"
	"fmt"

	"github.com/kbeauty/beautyfinder/internal/catalog"
	"github.com/kbeauty/beautyfinder/internal/db"
)

// Namespace prefixes every physical index and shop key.
const Namespace = "beautyfinder:"

// IndexName returns the physical index name for a catalog descriptor.
func IndexName(d catalog.Descriptor) string {
	return Namespace + d.Name() + ":idx"
}

// BuildIndexDefinition translates a catalog descriptor into a physical
// index definition: leading status tag, the descriptor's predicate
// columns in order, then lat/lon when the descriptor covers location.
func BuildIndexDefinition(d catalog.Descriptor) *db.IndexDefinition {
	fields := []db.IndexField{{Name: db.FieldStatus, Type: db.IndexFieldTag}}

	for _, col := range d.Columns() {
		fields = append(fields, db.IndexField{Name: string(col), Type: db.IndexFieldTag})
	}

	if d.CoversLocation() {
		fields = append(fields,
			db.IndexField{Name: db.FieldLat, Type: db.IndexFieldNumeric},
			db.IndexField{Name: db.FieldLon, Type: db.IndexFieldNumeric},
		)
	}

	return &db.IndexDefinition{
		Name:   IndexName(d),
		Prefix: Namespace + "shops:",
		Fields: fields,
	}
}

// EnsureIndexes materializes every catalog index on the store.
func EnsureIndexes(ctx context.Context, mgr db.IndexManager, cat *catalog.Catalog) error {
	for _, d := range cat.All() {
		def := BuildIndexDefinition(d)
		if err := mgr.EnsureIndex(ctx, def); err != nil {
			return fmt.Errorf("ensure index %s: %w", def.Name, err)
		}
	}
	return nil
}
