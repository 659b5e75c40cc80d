// Package errors provides structured error types shared across the
// lxc-autoscale components.
//
// Failures are classified by ErrorCode so call sites can decide how to
// degrade: transport and timeout failures mark a container unavailable for
// the cycle, parse failures mark a single reading invalid, and storage
// failures degrade rollback capability without stopping collection.
// StructuredError supports errors.Is and errors.As through Unwrap, and
// CodeOf/HasCode extract the classification from wrapped chains.
package errors
