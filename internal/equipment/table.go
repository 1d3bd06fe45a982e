// Package equipment maps a class and gold roll to a starting gear list
package equipment

import (
	"bufio"
	"embed"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/errors"
)

//go:embed data/equipment.txt
var defaultData embed.FS

// DefaultFile is the embedded table shipped with the binary
const DefaultFile = "data/equipment.txt"

// Spellbook is added to the gear of classes that cast arcane spells
const Spellbook = "spellbook"

type key struct {
	class    entities.Class
	goldRoll int
}

// Table is read-only after loading and safe for concurrent reads
type Table struct {
	entries map[key][]string
}

// Load parses lines of the form "class,goldRoll:item1, item2, ...".
// Lines without exactly one ':' are skipped, as are lines whose key
// is not "class,integer".
func Load(r io.Reader) (*Table, error) {
	t := &Table{entries: make(map[key][]string)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.Count(line, ":") != 1 {
			continue
		}

		rawKey, rawItems, _ := strings.Cut(line, ":")
		k, ok := parseKey(rawKey)
		if !ok {
			slog.Debug("skipping equipment line with malformed key",
				"line", lineNo,
				"key", rawKey)
			continue
		}

		items := strings.Split(rawItems, ",")
		for i := range items {
			items[i] = strings.TrimSpace(items[i])
		}
		t.entries[k] = items
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read equipment table")
	}

	return t, nil
}

func parseKey(raw string) (key, bool) {
	class, roll, found := strings.Cut(raw, ",")
	if !found || strings.Contains(roll, ",") {
		return key{}, false
	}

	goldRoll, err := strconv.Atoi(strings.TrimSpace(roll))
	if err != nil {
		return key{}, false
	}

	return key{class: entities.Class(strings.TrimSpace(class)), goldRoll: goldRoll}, true
}

// LoadFile loads a table from disk
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInternal, "failed to open equipment file %s", path)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// LoadDefault loads the embedded table
func LoadDefault() (*Table, error) {
	f, err := defaultData.Open(DefaultFile)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "embedded equipment table missing")
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// MustLoadDefault loads the embedded table, panicking on error
func MustLoadDefault() *Table {
	t, err := LoadDefault()
	if err != nil {
		panic(err)
	}
	return t
}

// Get returns a fresh copy of the gear list for a class and gold roll.
// Elves, dwarves and halflings use the fighter list. Elves and magic-users
// also get a spellbook.
func (t *Table) Get(class entities.Class, goldRoll int) ([]string, error) {
	items, ok := t.entries[key{class: class.EquipmentClass(), goldRoll: goldRoll}]
	if !ok {
		return nil, errors.NotFoundf("no equipment for class %s with gold roll %d", class, goldRoll).
			WithMeta("class", string(class)).
			WithMeta("gold_roll", goldRoll)
	}

	gear := make([]string, len(items), len(items)+1)
	copy(gear, items)
	if class.HasSpellbook() {
		gear = append(gear, Spellbook)
	}

	return gear, nil
}

// Len returns the number of (class, gold roll) entries
func (t *Table) Len() int {
	return len(t.entries)
}
