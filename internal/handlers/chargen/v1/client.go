package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/chargen/internal/errors"
)

// Client calls the character service and decodes its responses
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on an existing connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CreateCharacter starts a new character for playerName
func (c *Client) CreateCharacter(ctx context.Context, playerName string) (*CharacterResponse, error) {
	out := &CharacterResponse{}
	err := c.invoke(ctx, MethodCreateCharacter, CreateCharacterRequest{PlayerName: playerName}, out)
	return out, err
}

// GetCharacter loads a character with its sheet values
func (c *Client) GetCharacter(ctx context.Context, id string) (*CharacterResponse, error) {
	out := &CharacterResponse{}
	err := c.invoke(ctx, MethodGetCharacter, CharacterRequest{ID: id}, out)
	return out, err
}

// ListCharacters lists every stored character
func (c *Client) ListCharacters(ctx context.Context) (*ListCharactersResponse, error) {
	out := &ListCharactersResponse{}
	err := c.invoke(ctx, MethodListCharacters, Empty{}, out)
	return out, err
}

// DeleteCharacter removes a character
func (c *Client) DeleteCharacter(ctx context.Context, id string) error {
	return c.invoke(ctx, MethodDeleteCharacter, CharacterRequest{ID: id}, &Empty{})
}

// RollStats rolls ability scores
func (c *Client) RollStats(ctx context.Context, id string) (*CharacterResponse, error) {
	out := &CharacterResponse{}
	err := c.invoke(ctx, MethodRollStats, CharacterRequest{ID: id}, out)
	return out, err
}

// PickClass chooses a class
func (c *Client) PickClass(ctx context.Context, req PickClassRequest) (*CharacterResponse, error) {
	out := &CharacterResponse{}
	err := c.invoke(ctx, MethodPickClass, req, out)
	return out, err
}

// RollHPAndGear finishes a character
func (c *Client) RollHPAndGear(ctx context.Context, id string) (*CharacterResponse, error) {
	out := &CharacterResponse{}
	err := c.invoke(ctx, MethodRollHPAndGear, CharacterRequest{ID: id}, out)
	return out, err
}

// invoke sends req and decodes the reply into out. gRPC status errors are
// converted back into coded errors.
func (c *Client) invoke(ctx context.Context, method string, req, out any) error {
	in, err := ToStruct(req)
	if err != nil {
		return err
	}

	reply := &structpb.Struct{}
	if err := c.cc.Invoke(ctx, fullMethodName(method), in, reply); err != nil {
		return errors.FromGRPCError(err)
	}

	return FromStruct(reply, out)
}
