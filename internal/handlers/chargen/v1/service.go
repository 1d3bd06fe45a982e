// Package v1 serves the character API over gRPC.
//
// The service is registered from a hand-written descriptor whose requests and
// responses are google.protobuf.Struct messages shaped like the JSON types in
// messages.go.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "chargen.v1.CharacterService"

// Method names on the character service
const (
	MethodCreateCharacter = "CreateCharacter"
	MethodGetCharacter    = "GetCharacter"
	MethodListCharacters  = "ListCharacters"
	MethodDeleteCharacter = "DeleteCharacter"
	MethodRollStats       = "RollStats"
	MethodPickClass       = "PickClass"
	MethodRollHPAndGear   = "RollHPAndGear"
)

// CharacterServiceServer is the server API for the character service
type CharacterServiceServer interface {
	CreateCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PickClass(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollHPAndGear(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(CharacterServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

func unaryHandler(method string, call unaryCall) methodHandler {
	fullMethod := fullMethodName(method)
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CharacterServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CharacterServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func fullMethodName(method string) string {
	return "/" + ServiceName + "/" + method
}

// CharacterServiceDesc describes the character service for grpc.Server
var CharacterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodCreateCharacter,
			Handler:    unaryHandler(MethodCreateCharacter, CharacterServiceServer.CreateCharacter),
		},
		{
			MethodName: MethodGetCharacter,
			Handler:    unaryHandler(MethodGetCharacter, CharacterServiceServer.GetCharacter),
		},
		{
			MethodName: MethodListCharacters,
			Handler:    unaryHandler(MethodListCharacters, CharacterServiceServer.ListCharacters),
		},
		{
			MethodName: MethodDeleteCharacter,
			Handler:    unaryHandler(MethodDeleteCharacter, CharacterServiceServer.DeleteCharacter),
		},
		{
			MethodName: MethodRollStats,
			Handler:    unaryHandler(MethodRollStats, CharacterServiceServer.RollStats),
		},
		{
			MethodName: MethodPickClass,
			Handler:    unaryHandler(MethodPickClass, CharacterServiceServer.PickClass),
		},
		{
			MethodName: MethodRollHPAndGear,
			Handler:    unaryHandler(MethodRollHPAndGear, CharacterServiceServer.RollHPAndGear),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chargen/v1/character.proto",
}

// RegisterCharacterServiceServer registers the service on s
func RegisterCharacterServiceServer(s grpc.ServiceRegistrar, srv CharacterServiceServer) {
	s.RegisterService(&CharacterServiceDesc, srv)
}
