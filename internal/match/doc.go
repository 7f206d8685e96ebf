// Package match holds the esports match domain model and the filter pipeline
// used to narrow a cached match list.
//
// Matches are values: once decoded from a snapshot they are never mutated.
// Every filter returns a new slice in the original relative order and leaves
// its input untouched. An empty result is a valid outcome, not an error.
package match
