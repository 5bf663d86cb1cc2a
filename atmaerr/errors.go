// Package atmaerr defines Atma's domain error kinds as typed structs,
// following the teacher's internal/database pattern of
// NotFoundError/AlreadyExistsError plus Is*Error predicates, wrapped
// with github.com/cockroachdb/errors so that --ztrace can surface a
// stack.
package atmaerr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ParseError reports bad syntax in a command, script or expression,
// with the span of input that failed to parse.
type ParseError struct {
	Context  string
	Expected string
	Rest     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: expected %s, near %q", e.Context, e.Expected, previewRest(e.Rest))
}

func previewRest(rest string) string {
	const max = 24
	if len(rest) <= max {
		return rest
	}
	return rest[:max] + "…"
}

// UnknownRefError reports a CellRef that resolves to no index.
type UnknownRefError struct {
	Ref string
}

func (e *UnknownRefError) Error() string {
	return fmt.Sprintf("unknown reference %q", e.Ref)
}

// NotOccupiedError reports an index that resolved but is not occupied
// where occupancy was required.
type NotOccupiedError struct {
	Index uint32
}

func (e *NotOccupiedError) Error() string {
	return fmt.Sprintf("index %d is not occupied", e.Index)
}

// AlreadyOccupiedError reports an insert target that is occupied under
// the Error overwrite policy.
type AlreadyOccupiedError struct {
	Index uint32
}

func (e *AlreadyOccupiedError) Error() string {
	return fmt.Sprintf("index %d is already occupied", e.Index)
}

// NameConflictError reports a name already bound to another index.
type NameConflictError struct {
	Name  string
	Owner uint32
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("name %q is already assigned to index %d", e.Name, e.Owner)
}

// PositionConflictError reports a position already bound to another
// index.
type PositionConflictError struct {
	Page, Line, Column uint32
	Owner              uint32
}

func (e *PositionConflictError) Error() string {
	return fmt.Sprintf("position %d.%d.%d is already assigned to index %d", e.Page, e.Line, e.Column, e.Owner)
}

// CycleDetectedError reports a reference cycle found during
// evaluation, with the path of indices that closed the cycle.
type CycleDetectedError struct {
	Path []uint32
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("cycle detected: %v", e.Path)
}

// OutOfRoomError reports palette constraints exceeded under the Error
// room policy.
type OutOfRoomError struct {
	Page, Line, Column uint32
}

func (e *OutOfRoomError) Error() string {
	return fmt.Sprintf("out of room at %d.%d.%d", e.Page, e.Line, e.Column)
}

// HistoryEmptyError reports an undo/redo with an empty stack.
type HistoryEmptyError struct {
	Stack string // "undo" or "redo"
}

func (e *HistoryEmptyError) Error() string {
	return fmt.Sprintf("%s history is empty", e.Stack)
}

// NotFoundError reports a missing metadata binding (name/position/
// group) being unassigned.
type NotFoundError struct {
	Kind string // "name", "position" or "group"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// Wrap attaches a stack trace to err using cockroachdb/errors, the way
// internal/database/catalog.go wraps every typed error it returns.
func Wrap(err error) error {
	return errors.WithStack(err)
}

func is[T error](err error) bool {
	for err != nil {
		if _, ok := err.(T); ok {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

func IsParseError(err error) bool           { return is[*ParseError](err) }
func IsUnknownRefError(err error) bool      { return is[*UnknownRefError](err) }
func IsNotOccupiedError(err error) bool     { return is[*NotOccupiedError](err) }
func IsAlreadyOccupiedError(err error) bool { return is[*AlreadyOccupiedError](err) }
func IsNameConflictError(err error) bool    { return is[*NameConflictError](err) }
func IsPositionConflictError(err error) bool {
	return is[*PositionConflictError](err)
}
func IsCycleDetectedError(err error) bool { return is[*CycleDetectedError](err) }
func IsOutOfRoomError(err error) bool     { return is[*OutOfRoomError](err) }
func IsHistoryEmptyError(err error) bool  { return is[*HistoryEmptyError](err) }
func IsNotFoundError(err error) bool      { return is[*NotFoundError](err) }
