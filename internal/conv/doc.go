// Package conv provides small helpers to convert between arbitrary Go
// values.  Convert performs a best-effort JSON marshal/unmarshal round-trip
// used to coerce raw tool-call arguments into typed inputs; Pointer and
// Dereference bridge optional schema fields.
package conv
