package v1

import (
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/errors"
)

// CreateCharacterRequest starts a new character
type CreateCharacterRequest struct {
	PlayerName string `json:"player_name"`
}

// CharacterRequest addresses a stored character
type CharacterRequest struct {
	ID string `json:"id"`
}

// PickClassRequest chooses a class and optionally swaps two scores
type PickClassRequest struct {
	ID        string `json:"id"`
	Class     string `json:"class"`
	SwapLeft  string `json:"swap_left,omitempty"`
	SwapRight string `json:"swap_right,omitempty"`
	Name      string `json:"name,omitempty"`
}

// CharacterResponse carries a character's record, keyed by its ID
type CharacterResponse struct {
	ID        string           `json:"id"`
	Character *entities.Record `json:"character"`
	Sheet     *SheetMessage    `json:"sheet,omitempty"`
}

// SheetMessage carries derived sheet values
type SheetMessage struct {
	Modifiers   map[string]string `json:"modifiers"`
	AttackTable []AttackRow       `json:"attack_table"`
}

// AttackRow is the roll needed to hit one armor class
type AttackRow struct {
	ArmorClass int `json:"armor_class"`
	ToHit      int `json:"to_hit"`
}

// ListCharactersResponse lists every stored character
type ListCharactersResponse struct {
	Characters []*CharacterResponse `json:"characters"`
}

// Empty is the response for calls that return nothing
type Empty struct{}

func newCharacterResponse(id string, c entities.Character) *CharacterResponse {
	return &CharacterResponse{ID: id, Character: c.ToRecord()}
}

func newSheetMessage(sheet entities.Sheet) *SheetMessage {
	msg := &SheetMessage{
		Modifiers:   make(map[string]string, len(sheet.Modifiers)),
		AttackTable: make([]AttackRow, 0, len(sheet.AttackTable)),
	}
	for ability, text := range sheet.Modifiers {
		msg.Modifiers[string(ability)] = text
	}
	for _, row := range sheet.AttackTable {
		msg.AttackTable = append(msg.AttackTable, AttackRow{ArmorClass: row.ArmorClass, ToHit: row.ToHit})
	}
	return msg
}

// ToStruct encodes a message as a google.protobuf.Struct
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode message")
	}

	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode message")
	}
	return s, nil
}

// FromStruct decodes a google.protobuf.Struct into a message. A nil struct
// decodes as an empty message.
func FromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}

	raw, err := protojson.Marshal(s)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed message")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed message")
	}
	return nil
}
