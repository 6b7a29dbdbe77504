package logic

import "fmt"

// NotFoundError is returned when a lookup yielded zero rows, or more
// than one where exactly one was required. The message names the
// missing entity and is safe to surface to the end user as a 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func newNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ActionInProgressError is returned when a mutating operation cannot
// proceed because another action already runs on the entity, e.g.
// deleting a build that a worker still processes. The cascade that hit
// it aborts; it is never retried at this layer.
type ActionInProgressError struct {
	Action string
}

func (e *ActionInProgressError) Error() string {
	return fmt.Sprintf("action '%s' is already in progress", e.Action)
}

// InsufficientRightsError is returned when the acting user lacks the
// rights for a mutating operation.
type InsufficientRightsError struct {
	Message string
}

func (e *InsufficientRightsError) Error() string {
	return e.Message
}
