package publish

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTargetNotFound is returned when a verified target's destination queue
	// does not exist on the broker.
	ErrTargetNotFound = errors.New("publish: target queue does not exist")

	// ErrNilTarget is returned when a message is built without a target.
	ErrNilTarget = errors.New("publish: target cannot be nil")

	// ErrNilSerializer is returned when a message is built without a serializer.
	ErrNilSerializer = errors.New("publish: serializer cannot be nil")
)

// TargetNotFoundError reports a failed existence check for a verified target.
// The target stays unverified, so a later publish retries the check.
type TargetNotFoundError struct {
	Queue     string    // Queue that was checked
	Err       error     // Underlying broker error
	Timestamp time.Time // When the check failed
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("publish: queue %q does not exist: %v", e.Queue, e.Err)
}

func (e *TargetNotFoundError) Unwrap() error {
	return ErrTargetNotFound
}

// SerializationError reports a serializer failure at build time.
type SerializationError struct {
	ContentType string // Content type the serializer contributes, if any
	Err         error  // Underlying serializer error
}

func (e *SerializationError) Error() string {
	if e.ContentType != "" {
		return fmt.Sprintf("publish: failed to serialize body as %s: %v", e.ContentType, e.Err)
	}
	return fmt.Sprintf("publish: failed to serialize body: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
