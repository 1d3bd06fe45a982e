package v1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/orchestrators/character"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements the character gRPC service
type Handler struct {
	characterService character.Service
}

var _ CharacterServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
	}, nil
}

// CreateCharacter starts a new character
func (h *Handler) CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CreateCharacterRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.CreateCharacter(ctx, &character.CreateCharacterInput{
		PlayerName: in.PlayerName,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(newCharacterResponse(out.ID, out.Character))
}

// GetCharacter loads a character with its sheet values
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CharacterRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{ID: in.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := newCharacterResponse(out.ID, out.Character)
	resp.Sheet = newSheetMessage(out.Sheet)
	return respond(resp)
}

// ListCharacters lists every stored character
func (h *Handler) ListCharacters(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.characterService.ListCharacters(ctx, &character.ListCharactersInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &ListCharactersResponse{
		Characters: make([]*CharacterResponse, 0, len(out.Characters)),
	}
	for _, listed := range out.Characters {
		resp.Characters = append(resp.Characters, newCharacterResponse(listed.ID, listed.Character))
	}
	return respond(resp)
}

// DeleteCharacter removes a character
func (h *Handler) DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CharacterRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.characterService.DeleteCharacter(ctx, &character.DeleteCharacterInput{ID: in.ID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(Empty{})
}

// RollStats rolls the ability scores of a new character
func (h *Handler) RollStats(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CharacterRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.RollStats(ctx, &character.RollStatsInput{ID: in.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(newCharacterResponse(out.ID, out.Character))
}

// PickClass chooses a class for a character with rolled stats
func (h *Handler) PickClass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in PickClassRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.PickClass(ctx, &character.PickClassInput{
		ID:        in.ID,
		ClassName: in.Class,
		SwapLeft:  in.SwapLeft,
		SwapRight: in.SwapRight,
		Name:      in.Name,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(newCharacterResponse(out.ID, out.Character))
}

// RollHPAndGear finishes a character
func (h *Handler) RollHPAndGear(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CharacterRequest
	if err := FromStruct(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.characterService.RollHPAndGear(ctx, &character.RollHPAndGearInput{ID: in.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(newCharacterResponse(out.ID, out.Character))
}

func respond(v any) (*structpb.Struct, error) {
	s, err := ToStruct(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return s, nil
}
