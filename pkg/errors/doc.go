// Package errors provides structured error types shared by the resolution
// engine and the command line front end.
//
// Every failure that aborts a run carries an ErrorCode so callers can tell a
// missing artifact from an inconsistent installation without parsing text:
//
//	_, err := resolver.Resolve(ctx, req)
//	if errors.IsCode(err, errors.ErrCodeNotFound) {
//	    // nothing matched in any search root
//	}
//
// Context carries the inputs that were searched (roots, relative paths,
// file patterns) for diagnostics.
package errors
