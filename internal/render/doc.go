// Package render turns resolved symbols and types into the qualified names
// used in diagnostic messages, e.g. "Foo<T>.Bar(int, params string[])".
//
// A Renderer is immutable configuration and may be shared. Each top-level
// request writes into its own Session; the session is threaded through the
// whole recursive descent of that request and must not be shared between
// concurrent requests.
//
// Invariant violations (an unknown kind, session misuse, an error type that
// carries type arguments without parent information) panic with an error
// wrapping one of the sentinel errors below. They indicate a bug in the graph
// producer or the caller, never a recoverable condition.
package render
