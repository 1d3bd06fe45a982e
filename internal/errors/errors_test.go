package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/chargen/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "character not found",
			expected: "NOT_FOUND: character not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid class",
			expected: "INVALID_ARGUMENT: invalid class",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load character")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load character", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("record not found").WithMeta("character_id", "abc")
	wrapped := errors.Wrap(baseErr, "character not found")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("abc", errors.GetMeta(wrapped)["character_id"])
	s.True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	wrapped := errors.WrapWithCode(fmt.Errorf("bad json"), errors.CodeNotFound, "stored record unreadable")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("stored record unreadable", wrapped.Message)
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestStateGuard() {
	err := errors.StateGuard("has-stats", "new")

	s.Equal(errors.CodeFailedPrecondition, err.Code)
	s.Contains(err.Error(), `"has-stats"`)
	s.Equal("has-stats", err.Meta["state"])
	s.Equal("new", err.Meta["required_state"])
	s.True(errors.IsStateGuard(err))
	s.True(errors.IsStateGuard(errors.Wrap(err, "roll stats")))
	s.False(errors.IsStateGuard(errors.FailedPrecondition("other")))

	s.Equal("has-stats", errors.CurrentState(err))
	s.Equal("new", errors.RequiredState(errors.Wrap(err, "roll stats")))
	s.Empty(errors.RequiredState(errors.NotFound("gone")))

	// meta survives the gRPC status round trip
	back := errors.FromGRPCError(errors.ToGRPCError(err))
	s.Equal("new", errors.RequiredState(back))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.True(errors.NotFound("a").Is(errors.NotFound("b")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
	s.True(errors.Is(errors.Wrap(errors.NotFound("a"), "wrapped"), errors.NotFound("")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeNotFound, errors.GetCode(errors.Wrap(errors.NotFound("x"), "y")))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	s.Equal("wrapped message", errors.GetMessage(errors.Wrap(errors.NotFound("x"), "wrapped message")))
	s.Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
	s.Equal("", errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeNotFound, 404},
		{errors.CodeFailedPrecondition, 409},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.StateGuard("done", "has-class").WithMeta("character_id", "123")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.FailedPrecondition, st.Code())

	back := errors.FromGRPCError(grpcErr)
	s.True(errors.IsStateGuard(back))
	s.Equal("123", errors.GetMeta(back)["character_id"])
}

func (s *ErrorsTestSuite) TestGRPCValidationMeta() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("id")
	err := vb.Build()

	back := errors.FromGRPCError(errors.ToGRPCError(err))
	s.True(errors.IsInvalidArgument(back))
	s.NotNil(errors.GetMeta(back)["validation_errors"])
}

func (s *ErrorsTestSuite) TestGRPCPlainError() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())
	s.Nil(errors.ToGRPCError(nil))
}
