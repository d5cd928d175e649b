// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// The pipeline core never talks to an embedding model, a vector database, or
// a language model directly; it depends on the capability interfaces defined
// here. Each capability has at least one real adapter and a null adapter that
// reports unavailability, selected once by the dependency probe at pipeline
// construction.
package driven
