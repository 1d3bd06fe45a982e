package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts an error to a gRPC status error. Metadata that can be
// represented as a google.protobuf.Struct travels as a status detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if details := metaStruct(customErr); details != nil {
		if withDetails, detailErr := st.WithDetails(details); detailErr == nil {
			st = withDetails
		}
	}

	return st.Err()
}

// FromGRPCError converts a gRPC error back to our error type
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		if meta, ok := detail.(*structpb.Struct); ok {
			customErr.Meta = meta.AsMap()
			break
		}
	}

	return customErr
}

func metaStruct(e *Error) *structpb.Struct {
	if len(e.Meta) == 0 {
		return nil
	}

	plain := make(map[string]any, len(e.Meta))
	for k, v := range e.Meta {
		switch typed := v.(type) {
		case map[string][]string:
			fields := make(map[string]any, len(typed))
			for field, msgs := range typed {
				list := make([]any, len(msgs))
				for i, m := range msgs {
					list[i] = m
				}
				fields[field] = list
			}
			plain[k] = fields
		default:
			plain[k] = v
		}
	}

	s, err := structpb.NewStruct(plain)
	if err != nil {
		return nil
	}
	return s
}
