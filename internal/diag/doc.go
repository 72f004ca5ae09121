// Package diag turns diagnostic arguments into display text.
//
// # Arguments
//
// A diagnostic message template is filled from a list of Arg values. The set
// of argument kinds is closed:
//
//   - MessageArg – a fixed localized phrase ("<null>", "method group", ...).
//   - KindArg – the localized name of a symbol kind ("class", "property").
//   - NameArg, TextArg – plain text echoed verbatim.
//   - TypeArg, SymbolArg – a resolved type or symbol with an optional
//     substitution context.
//   - BoundSymbolArg – a symbol seen through an aggregate instantiation.
//   - BoundMethodArg – a method seen through its container instantiation and
//     its own method type arguments.
//
// # Origin
//
// Every Formatted result records where its text came from. Resolved-reference
// arguments are rendered by internal/render in a fresh session and report
// OriginResolved; everything else reports OriginPhrase. Message assembly uses
// the origin to decide on quoting (see Formatted.Quoted).
//
// An unrecognised argument is not fatal: Format returns an error wrapping
// ErrUnknownArg and the caller decides how to proceed. Invariant violations
// inside the renderer still panic.
package diag
