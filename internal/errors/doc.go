// Package errors provides the coded error type used across chargen.
//
// Every error that crosses a package boundary carries a Code so the HTTP
// wizard, the gRPC API and the CLI can decide how to react without string
// matching:
//
//   - CodeInvalidArgument: bad class name, malformed form input, bad config
//   - CodeFailedPrecondition: a transition was attempted from the wrong state
//   - CodeNotFound: unknown character key, unreadable record, equipment miss
//   - CodeInternal / CodeUnavailable: storage or file failures
//
// Creating errors:
//
//	err := errors.NotFoundf("character %s not found", id)
//	err := errors.StateGuard(current, entities.StateHasStats).WithMeta("character_id", id)
//
// Wrapping keeps the code of the wrapped error when it has one:
//
//	if err := repo.Update(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to save character")
//	}
//
// Collecting field failures:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("id", input.ID, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
package errors
