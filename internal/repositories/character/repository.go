// Package character persists character records by key
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/chargen/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/chargen/internal/entities"
)

// Repository defines the interface for character persistence.
// Records are stored as JSON using the entities.Record field names.
type Repository interface {
	// Create stores a new character under ID
	// Returns errors.InvalidArgument for empty IDs or a nil character
	// Returns errors.AlreadyExists if the ID is taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get loads a character by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the ID is unknown or the stored record is malformed
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing character
	// Returns errors.InvalidArgument for empty IDs or a nil character
	// Returns errors.NotFound if the ID is unknown
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the ID is unknown
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every stored character ordered by creation time.
	// Malformed records are skipped.
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// Entry is a stored character and its key
type Entry struct {
	ID        string
	Character entities.Character
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	ID        string
	Character entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Entry *Entry
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Entry *Entry
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	ID        string
	Character entities.Character
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Entry *Entry
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListInput defines the input for listing characters
type ListInput struct{}

// ListOutput defines the output for listing characters
type ListOutput struct {
	Entries []*Entry
}
