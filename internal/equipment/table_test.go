package equipment_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/equipment"
	"github.com/KirkDiggler/chargen/internal/errors"
)

const sampleTable = `fighter,10:sword, shield ,  chain mail
cleric,10:mace,holy symbol
magic-user,10:dagger
this line has no colon
too:many:colons
fighter:missing roll
fighter,ten:bad roll
fighter,1,2:too many commas

thief,10:
`

type TableTestSuite struct {
	suite.Suite
	table *equipment.Table
}

func TestTableSuite(t *testing.T) {
	suite.Run(t, new(TableTestSuite))
}

func (s *TableTestSuite) SetupTest() {
	table, err := equipment.Load(strings.NewReader(sampleTable))
	s.Require().NoError(err)
	s.table = table
}

func (s *TableTestSuite) TestLoadSkipsMalformedLines() {
	s.Equal(4, s.table.Len())
}

func (s *TableTestSuite) TestItemsAreTrimmed() {
	gear, err := s.table.Get(entities.ClassFighter, 10)
	s.Require().NoError(err)
	s.Equal([]string{"sword", "shield", "chain mail"}, gear)
}

func (s *TableTestSuite) TestEmptyItemList() {
	gear, err := s.table.Get(entities.ClassThief, 10)
	s.Require().NoError(err)
	s.Equal([]string{""}, gear)
}

func (s *TableTestSuite) TestDemiHumansUseFighterGear() {
	fighter, err := s.table.Get(entities.ClassFighter, 10)
	s.Require().NoError(err)

	s.Run("elf gets fighter gear plus spellbook", func() {
		gear, err := s.table.Get(entities.ClassElf, 10)
		s.Require().NoError(err)
		s.Equal(append(append([]string{}, fighter...), equipment.Spellbook), gear)
	})

	for _, class := range []entities.Class{entities.ClassDwarf, entities.ClassHalfling} {
		s.Run(string(class), func() {
			gear, err := s.table.Get(class, 10)
			s.Require().NoError(err)
			s.Equal(fighter, gear)
		})
	}
}

func (s *TableTestSuite) TestSpellbook() {
	gear, err := s.table.Get(entities.ClassMagicUser, 10)
	s.Require().NoError(err)
	s.Equal([]string{"dagger", "spellbook"}, gear)

	gear, err = s.table.Get(entities.ClassCleric, 10)
	s.Require().NoError(err)
	s.NotContains(gear, equipment.Spellbook)
}

func (s *TableTestSuite) TestGetReturnsFreshSlice() {
	first, err := s.table.Get(entities.ClassElf, 10)
	s.Require().NoError(err)
	first[0] = "mutated"

	second, err := s.table.Get(entities.ClassElf, 10)
	s.Require().NoError(err)
	s.Equal([]string{"sword", "shield", "chain mail", "spellbook"}, second)

	fighter, err := s.table.Get(entities.ClassFighter, 10)
	s.Require().NoError(err)
	s.Equal([]string{"sword", "shield", "chain mail"}, fighter)
}

func (s *TableTestSuite) TestMissingEntry() {
	_, err := s.table.Get(entities.ClassFighter, 18)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal(18, errors.GetMeta(err)["gold_roll"])
}

func TestLoadDefaultCoversEveryClassAndRoll(t *testing.T) {
	table, err := equipment.LoadDefault()
	require.NoError(t, err)

	for _, class := range entities.Classes {
		for roll := 3; roll <= 18; roll++ {
			gear, err := table.Get(class, roll)
			require.NoError(t, err, "%s %d", class, roll)
			assert.NotEmpty(t, gear)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equipment.txt")
	require.NoError(t, os.WriteFile(path, []byte("thief,3:dagger, lock picks\n"), 0o600))

	table, err := equipment.LoadFile(path)
	require.NoError(t, err)
	gear, err := table.Get(entities.ClassThief, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"dagger", "lock picks"}, gear)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := equipment.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
}
