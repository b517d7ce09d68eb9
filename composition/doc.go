// Package composition turns a title, word timings and media durations into a
// CompositionPlan: a background window cut to the narration, a title card
// (optionally over a template image) and one timed caption per spoken word.
//
// The package does no I/O. Randomness and text measurement are injected so
// plans are reproducible in tests.
package composition
