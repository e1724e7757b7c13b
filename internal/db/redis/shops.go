package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kbeauty/beautyfinder/internal/db"
)

// KeyPrefix is the hash key namespace shared with the FT index
// definitions.
const KeyPrefix = "beautyfinder:shops:"

// ShopKey returns the hash key for a shop ID.
func ShopKey(id string) string {
	return KeyPrefix + id
}

// UpsertShops stores shop hashes in a single DoMulti round-trip.
func (s *Store) UpsertShops(ctx context.Context, docs []db.ShopDoc) error {
	if len(docs) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(docs))
	for i, doc := range docs {
		cmd := s.b().Hset().Key(ShopKey(doc.ID)).FieldValue()
		for k, v := range doc.Fields {
			cmd = cmd.FieldValue(k, v)
		}
		cmds[i] = cmd.Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("shop %s: %w", docs[i].ID, err)}
		}
	}
	return nil
}
