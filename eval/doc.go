// Package eval provides the callback layer of the engine: a
// registry of named validator and hook symbols, resolved when a
// patch is processed rather than when the callback is registered,
// and compilers turning expressions into validator and hook
// callbacks.
//
// Named resolution failing at process time is reported as an
// internal error by the engine; prefer passing callbacks directly
// where registration-time failure is acceptable.
package eval
