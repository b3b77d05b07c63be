// Package diag defines the error taxonomy and diagnostic model of the verifier.
//
// # Codes
//
// Every failure is identified by a Code. Codes are grouped into families by
// their numeric range:
//
//   - SCP1xxx – scope structure (syntax, blocks, conditions);
//   - MTH2xxx – method declarations and calls;
//   - VAR3xxx – variable declarations, values, initialization;
//   - IO4xxx  – input problems, raised by the driver only.
//
// A code carries no text of its own beyond a short title. The user-facing
// message is produced by Code.Format from the subjects (offending line,
// names, type labels) recorded when the error was raised.
//
// # Errors vs diagnostics
//
// The analysis core stops at the first failure and returns it as *Error.
// The driver turns that into a Diagnostic with a source span, converting
// any LineNote into a Note, and collects the results in a Bag that
// internal/diagfmt renders.
//
// Package diag does no IO and no formatting beyond single-line messages.
package diag
