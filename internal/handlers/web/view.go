package web

import (
	"strconv"
	"time"

	"github.com/KirkDiggler/chargen/internal/entities"
)

const (
	absentStat = "???"
	timeLayout = "2006-01-02 15:04:05"
)

type statView struct {
	Label    string
	Value    string
	Modifier string
}

type saveView struct {
	Label string
	Value int
}

// characterView flattens any character state for the templates
type characterView struct {
	Key        string
	HubURL     string
	State      entities.State
	PlayerName string
	CreatedAt  int64
	UpdatedAt  int64

	Stats []statView

	Class       entities.Class
	Name        string
	THAC0       int
	Saves       []saveView
	AttackTable []entities.AttackRow

	HitPoints string
	Equipment []string
}

func newCharacterView(key, hubURL string, c entities.Character) *characterView {
	meta := c.Metadata()
	v := &characterView{
		Key:         key,
		HubURL:      hubURL,
		State:       c.State(),
		PlayerName:  meta.PlayerName,
		CreatedAt:   meta.CreatedAt,
		UpdatedAt:   meta.UpdatedAt,
		THAC0:       c.EffectiveTHAC0(),
		AttackTable: entities.NewSheet(c).AttackTable,
		HitPoints:   absentStat,
	}

	scores, rolled := c.Abilities()
	for _, ability := range entities.Abilities {
		stat := statView{Label: string(ability), Value: absentStat, Modifier: entities.ModifierText(c, ability)}
		if rolled {
			stat.Value = strconv.Itoa(scores.Get(ability))
		}
		v.Stats = append(v.Stats, stat)
	}

	var identity *entities.Identity
	switch typed := c.(type) {
	case *entities.ClassedCharacter:
		identity = &typed.Identity
	case *entities.FinishedCharacter:
		identity = &typed.Identity
		v.HitPoints = strconv.Itoa(typed.HitPoints)
		v.Equipment = typed.Equipment
	}

	if identity != nil {
		v.Class = identity.Class
		v.Name = identity.Name
		v.Saves = []saveView{
			{Label: "Poison or death ray", Value: identity.Saves.Poison},
			{Label: "Wands", Value: identity.Saves.Wands},
			{Label: "Paralysis or turn to stone", Value: identity.Saves.Paralysis},
			{Label: "Dragon breath", Value: identity.Saves.Breath},
			{Label: "Rods, staves and spells", Value: identity.Saves.Spells},
		}
	}

	return v
}

func renderTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(timeLayout)
}
