// Package pipeline shapes product lists for display.
//
// All functions are pure: they never mutate their input and always return a
// freshly allocated slice. Ordering is stable, so records that compare equal
// keep their original relative order.
package pipeline
