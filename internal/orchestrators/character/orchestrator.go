// Package character implements the character generation orchestrator
package character

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/chargen/internal/dice"
	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/pkg/clock"
	"github.com/KirkDiggler/chargen/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/chargen/internal/repositories/character"
	"github.com/KirkDiggler/chargen/internal/telemetry"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	DiceRoller    dice.Roller
	Equipment     entities.EquipmentSource
	IDGenerator   idgen.Generator
	// Clock defaults to the system clock
	Clock clock.Clock
	// Tracer defaults to a no-op tracer
	Tracer trace.Tracer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.Equipment == nil {
		vb.RequiredField("Equipment")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	repo      characterrepo.Repository
	roller    dice.Roller
	equipment entities.EquipmentSource
	idGen     idgen.Generator
	clock     clock.Clock
	tracer    trace.Tracer
}

// New creates a new character orchestrator with the provided dependencies
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}

	return &orchestrator{
		repo:      cfg.CharacterRepo,
		roller:    cfg.DiceRoller,
		equipment: cfg.Equipment,
		idGen:     cfg.IDGenerator,
		clock:     c,
		tracer:    tracer,
	}, nil
}

func (o *orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	ctx, span := o.tracer.Start(ctx, "character.Create")
	defer span.End()

	if input == nil {
		return nil, fail(span, errors.InvalidArgument("input is required"))
	}

	id := o.idGen.Generate()
	span.SetAttributes(attribute.String("character.id", id))

	c := entities.NewCharacterAt(input.PlayerName, o.clock.Now())
	if _, err := o.repo.Create(ctx, characterrepo.CreateInput{ID: id, Character: c}); err != nil {
		return nil, fail(span, errors.Wrap(err, "failed to create character"))
	}

	slog.InfoContext(ctx, "character created",
		"character_id", id,
		"player_name", input.PlayerName)

	return &CreateCharacterOutput{ID: id, Character: c}, nil
}

func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	ctx, span := o.tracer.Start(ctx, "character.Get")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.String("character.id", input.ID))

	out, err := o.repo.Get(ctx, characterrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, fail(span, err)
	}

	c := out.Entry.Character
	span.SetAttributes(attribute.String("character.state", string(c.State())))

	return &GetCharacterOutput{
		ID:        input.ID,
		Character: c,
		Sheet:     entities.NewSheet(c),
	}, nil
}

func (o *orchestrator) ListCharacters(ctx context.Context, _ *ListCharactersInput) (*ListCharactersOutput, error) {
	ctx, span := o.tracer.Start(ctx, "character.List")
	defer span.End()

	out, err := o.repo.List(ctx, characterrepo.ListInput{})
	if err != nil {
		return nil, fail(span, errors.Wrap(err, "failed to list characters"))
	}

	listed := make([]*ListedCharacter, 0, len(out.Entries))
	for _, entry := range out.Entries {
		listed = append(listed, &ListedCharacter{ID: entry.ID, Character: entry.Character})
	}
	span.SetAttributes(attribute.Int("character.count", len(listed)))

	return &ListCharactersOutput{Characters: listed}, nil
}

func (o *orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	ctx, span := o.tracer.Start(ctx, "character.Delete")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.String("character.id", input.ID))

	if _, err := o.repo.Delete(ctx, characterrepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, fail(span, err)
	}

	slog.InfoContext(ctx, "character deleted", "character_id", input.ID)
	return &DeleteCharacterOutput{}, nil
}

func (o *orchestrator) RollStats(ctx context.Context, input *RollStatsInput) (*RollStatsOutput, error) {
	ctx, span := o.tracer.Start(ctx, "character.RollStats")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, fail(span, err)
	}

	c, err := advance(ctx, o, span, input.ID, func(c entities.Character, now time.Time) (*entities.RolledCharacter, error) {
		return entities.RollStats(c, o.roller, now)
	})
	if err != nil {
		return nil, err
	}

	return &RollStatsOutput{ID: input.ID, Character: c}, nil
}

func (o *orchestrator) PickClass(ctx context.Context, input *PickClassInput) (*PickClassOutput, error) {
	ctx, span := o.tracer.Start(ctx, "character.PickClass")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.String("character.class", input.ClassName))

	choice := entities.ClassChoice{
		ClassName: input.ClassName,
		SwapLeft:  input.SwapLeft,
		SwapRight: input.SwapRight,
		Name:      input.Name,
	}
	c, err := advance(ctx, o, span, input.ID, func(c entities.Character, now time.Time) (*entities.ClassedCharacter, error) {
		return entities.PickClass(c, choice, now)
	})
	if err != nil {
		return nil, err
	}

	return &PickClassOutput{ID: input.ID, Character: c}, nil
}

func (o *orchestrator) RollHPAndGear(ctx context.Context, input *RollHPAndGearInput) (*RollHPAndGearOutput, error) {
	ctx, span := o.tracer.Start(ctx, "character.RollHPAndGear")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, fail(span, err)
	}

	c, err := advance(ctx, o, span, input.ID, func(c entities.Character, now time.Time) (*entities.FinishedCharacter, error) {
		return entities.RollHPAndGear(c, o.roller, o.equipment, now)
	})
	if err != nil {
		return nil, err
	}

	return &RollHPAndGearOutput{ID: input.ID, Character: c}, nil
}

// advance loads a character, applies one step and saves the result.
// Nothing is written when the step fails.
func advance[T entities.Character](
	ctx context.Context,
	o *orchestrator,
	span trace.Span,
	id string,
	step func(entities.Character, time.Time) (T, error),
) (T, error) {
	var zero T
	span.SetAttributes(attribute.String("character.id", id))

	got, err := o.repo.Get(ctx, characterrepo.GetInput{ID: id})
	if err != nil {
		return zero, fail(span, err)
	}
	current := got.Entry.Character

	next, err := step(current, o.clock.Now())
	if err != nil {
		if errors.IsStateGuard(err) {
			slog.InfoContext(ctx, "character step rejected",
				"character_id", id,
				"state", current.State(),
				"required_state", errors.RequiredState(err))
		}
		return zero, fail(span, err)
	}

	if _, err := o.repo.Update(ctx, characterrepo.UpdateInput{ID: id, Character: next}); err != nil {
		return zero, fail(span, errors.Wrapf(err, "failed to save character %s", id))
	}

	span.SetAttributes(attribute.String("character.state", string(next.State())))
	slog.InfoContext(ctx, "character advanced",
		"character_id", id,
		"from", current.State(),
		"to", next.State())

	return next, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
