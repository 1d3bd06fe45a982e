package character

import (
	"context"

	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/pkg/idgen"
)

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/chargen/internal/orchestrators/character Service

// Service drives characters through generation. Every step loads the record,
// checks its state, applies the step and saves the result.
type Service interface {
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Generation steps. Each returns errors.FailedPrecondition with
	// state/required_state meta when the character is at a different step.
	RollStats(ctx context.Context, input *RollStatsInput) (*RollStatsOutput, error)
	PickClass(ctx context.Context, input *PickClassInput) (*PickClassOutput, error)
	RollHPAndGear(ctx context.Context, input *RollHPAndGearInput) (*RollHPAndGearOutput, error)
}

// CreateCharacterInput defines the request for starting a character
type CreateCharacterInput struct {
	PlayerName string
}

// CreateCharacterOutput defines the response for starting a character
type CreateCharacterOutput struct {
	ID        string
	Character *entities.NewCharacter
}

// GetCharacterInput defines the request for loading a character
type GetCharacterInput struct {
	ID string
}

// GetCharacterOutput carries the character and its derived sheet values
type GetCharacterOutput struct {
	ID        string
	Character entities.Character
	Sheet     entities.Sheet
}

// ListCharactersInput defines the request for listing characters
type ListCharactersInput struct{}

// ListedCharacter is a stored character and its key
type ListedCharacter struct {
	ID        string
	Character entities.Character
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*ListedCharacter
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	ID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct{}

// RollStatsInput defines the request for rolling ability scores
type RollStatsInput struct {
	ID string
}

// RollStatsOutput defines the response for rolling ability scores
type RollStatsOutput struct {
	ID        string
	Character *entities.RolledCharacter
}

// PickClassInput defines the request for choosing a class
type PickClassInput struct {
	ID        string
	ClassName string
	// SwapLeft and SwapRight optionally exchange two ability scores,
	// by full name or short code (str dex con int wis chr)
	SwapLeft  string
	SwapRight string
	Name      string
}

// PickClassOutput defines the response for choosing a class
type PickClassOutput struct {
	ID        string
	Character *entities.ClassedCharacter
}

// RollHPAndGearInput defines the request for the final step
type RollHPAndGearInput struct {
	ID string
}

// RollHPAndGearOutput defines the response for the final step
type RollHPAndGearOutput struct {
	ID        string
	Character *entities.FinishedCharacter
}

func validateID(id string) error {
	vb := errors.NewValidationBuilder()
	if id == "" {
		vb.RequiredField("id")
	} else if !idgen.ValidKey(id) {
		vb.Fieldf("id", "must be 1 to %d letters, digits, '-' or '_'", idgen.MaxKeyLength)
	}
	return vb.Build()
}

func errInputRequired() error {
	return errors.InvalidArgument("input is required")
}

// Validate checks the request
func (i *GetCharacterInput) Validate() error {
	if i == nil {
		return errInputRequired()
	}
	return validateID(i.ID)
}

// Validate checks the request
func (i *DeleteCharacterInput) Validate() error {
	if i == nil {
		return errInputRequired()
	}
	return validateID(i.ID)
}

// Validate checks the request
func (i *RollStatsInput) Validate() error {
	if i == nil {
		return errInputRequired()
	}
	return validateID(i.ID)
}

// Validate checks the request. The class name is checked by the step
// itself so a wrong-state request is reported before a bad class.
func (i *PickClassInput) Validate() error {
	if i == nil {
		return errInputRequired()
	}
	return validateID(i.ID)
}

// Validate checks the request
func (i *RollHPAndGearInput) Validate() error {
	if i == nil {
		return errInputRequired()
	}
	return validateID(i.ID)
}
