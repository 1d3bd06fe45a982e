package errors

// Meta keys set by StateGuard
const (
	MetaState         = "state"
	MetaRequiredState = "required_state"
)

// StateGuard reports a transition attempted from the wrong state.
// The caller is expected to send the user back to the step matching current.
func StateGuard[S ~string](current, required S) *Error {
	return FailedPreconditionf("character is in state %q, operation requires %q", current, required).
		WithMeta(MetaState, string(current)).
		WithMeta(MetaRequiredState, string(required))
}

// IsStateGuard reports whether err came from StateGuard
func IsStateGuard(err error) bool {
	if !IsFailedPrecondition(err) {
		return false
	}
	_, ok := GetMeta(err)[MetaRequiredState]
	return ok
}

// CurrentState returns the state a guarded character was found in, or "" when
// err is not a state guard. The value survives a gRPC round trip.
func CurrentState(err error) string {
	if !IsStateGuard(err) {
		return ""
	}
	s, _ := GetMeta(err)[MetaState].(string)
	return s
}

// RequiredState returns the state the rejected operation needed
func RequiredState(err error) string {
	if !IsStateGuard(err) {
		return ""
	}
	s, _ := GetMeta(err)[MetaRequiredState].(string)
	return s
}
