package model

import "fmt"

// InputError is any schema violation or out-of-range value found while
// ingesting a request. Fatal to the request (§7).
type InputError struct {
	Field   string
	EntityID *uint64
	Msg     string
}

func (e *InputError) Error() string {
	if e.EntityID != nil {
		return fmt.Sprintf("invalid input: %s (id=%d): %s", e.Field, *e.EntityID, e.Msg)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Msg)
}

func NewInputError(field, msg string) *InputError {
	return &InputError{Field: field, Msg: msg}
}

func NewInputErrorFor(field string, id uint64, msg string) *InputError {
	return &InputError{Field: field, EntityID: &id, Msg: msg}
}

// SolveInternalError indicates an invariant breach inside the solver —
// a bug, not a bad input. Fatal to the run.
type SolveInternalError struct {
	Msg string
}

func (e *SolveInternalError) Error() string {
	return "solve internal error: " + e.Msg
}

func NewSolveInternalError(msg string) *SolveInternalError {
	return &SolveInternalError{Msg: msg}
}
