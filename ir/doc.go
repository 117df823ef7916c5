// Package ir provides the in-memory document representation: a
// tagged-union Node covering null, bool, number, string, ordered
// object, and array values, together with deep clone and the strict
// and coercive equality used by test patches.
package ir
