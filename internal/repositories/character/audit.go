package character

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/KirkDiggler/chargen/internal/errors"
	redisclient "github.com/KirkDiggler/chargen/internal/redis"
)

// Corrupted is a stored record that no longer decodes into a character
type Corrupted struct {
	ID     string
	Reason string
}

// Auditor is implemented by stores that can be scanned for corrupted records.
// List and Get hide such records, so this is the only way to find them.
type Auditor interface {
	FindCorrupted(ctx context.Context) ([]*Corrupted, error)
}

const scanBatch = 100

// FindCorrupted scans every character key, including keys missing from the index
func (r *redisRepository) FindCorrupted(ctx context.Context) ([]*Corrupted, error) {
	var found []*Corrupted

	iter := r.client.Scan(ctx, 0, characterKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == indexKey {
			continue
		}
		id := strings.TrimPrefix(key, characterKeyPrefix)

		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redisclient.Nil {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		if _, err := decode(id, data); err != nil {
			found = append(found, &Corrupted{ID: id, Reason: err.Error()})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan character keys")
	}

	sortCorrupted(found)
	return found, nil
}

// FindCorrupted returns rows whose record column no longer decodes
func (r *sqliteRepository) FindCorrupted(ctx context.Context) ([]*Corrupted, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, record FROM characters`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan characters")
	}
	defer func() { _ = rows.Close() }()

	var found []*Corrupted
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, errors.Wrap(err, "failed to scan character")
		}
		if _, err := decode(id, []byte(data)); err != nil {
			found = append(found, &Corrupted{ID: id, Reason: err.Error()})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan characters")
	}

	sortCorrupted(found)
	return found, nil
}

func sortCorrupted(found []*Corrupted) {
	slices.SortFunc(found, func(a, b *Corrupted) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
