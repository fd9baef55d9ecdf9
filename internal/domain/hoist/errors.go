package hoist

import (
	"errors"
	"fmt"
	"strings"

	"mockhoist.dev/pkg/mockhoist/internal/jsast"
)

// Kind classifies a terminal transform error.
type Kind uint8

// Error kinds.
const (
	InvalidFactoryArgument Kind = iota + 1
	OutOfScopeReference
)

func (k Kind) String() string {
	switch k {
	case InvalidFactoryArgument:
		return "InvalidFactoryArgument"
	case OutOfScopeReference:
		return "OutOfScopeReference"
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Sentinels matched by errors.Is against *Error.
var (
	ErrInvalidFactoryArgument = errors.New("invalid mock factory argument")
	ErrOutOfScopeReference    = errors.New("out-of-scope reference in mock factory")
)

// Error aborts the transform of one program. Pos points at the offending
// node; Name is the offending variable for OutOfScopeReference.
type Error struct {
	Kind    Kind
	Pos     jsast.Pos
	Name    string
	Message string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Message)
	}

	return e.Message
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case InvalidFactoryArgument:
		return target == ErrInvalidFactoryArgument
	case OutOfScopeReference:
		return target == ErrOutOfScopeReference
	}

	return false
}

func invalidFactory(arg jsast.Expr) *Error {
	return &Error{
		Kind:    InvalidFactoryArgument,
		Pos:     arg.Start(),
		Message: "The second argument of `" + JestName + ".mock` must be an inline function.",
	}
}

func outOfScope(id *jsast.Identifier) *Error {
	var b strings.Builder

	b.WriteString("The module factory of `" + JestName + ".mock()` is not allowed to reference any out-of-scope variables.\n")
	fmt.Fprintf(&b, "Invalid variable access: %s\n", id.Name)
	fmt.Fprintf(&b, "Allowed objects: %s.\n", strings.Join(AllowedIdentifiers(), ", "))
	b.WriteString("Note: This is a precaution to guard against uninitialized mock variables. ")
	b.WriteString("If it is ensured that the mock is required lazily, variable names prefixed with `mock` (case insensitive) are permitted.")

	return &Error{
		Kind:    OutOfScopeReference,
		Pos:     id.Loc,
		Name:    id.Name,
		Message: b.String(),
	}
}
