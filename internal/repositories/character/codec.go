package character

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/errors"
)

const (
	errIDEmpty       = "character ID cannot be empty"
	errCharacterNil  = "character cannot be nil"
	defaultListLimit = 8
)

func validateWrite(id string, c entities.Character) error {
	if id == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	if c == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	return nil
}

func encode(c entities.Character) ([]byte, error) {
	data, err := json.Marshal(c.ToRecord())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character record")
	}
	return data, nil
}

// decode treats unreadable or inconsistent records as missing
func decode(id string, data []byte) (entities.Character, error) {
	var record entities.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeNotFound, "character %s is malformed", id).
			WithMeta("id", id)
	}

	c, err := record.Character()
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeNotFound, "character %s is malformed", id).
			WithMeta("id", id)
	}
	return c, nil
}

func sortEntries(entries []*Entry) {
	slices.SortFunc(entries, func(a, b *Entry) int {
		return cmp.Or(
			cmp.Compare(a.Character.Metadata().CreatedAt, b.Character.Metadata().CreatedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
