package tree

import (
	"errors"
	"fmt"
)

// Kind identifies the class of failure a tree operation reported.
type Kind int

const (
	// KindNone is the zero Kind; never appears on a returned *Error.
	KindNone Kind = iota

	// KindInvalid means a path argument was not well-formed.
	KindInvalid

	// KindNotFound means some component along the path does not exist.
	KindNotFound

	// KindExists means create or move would overwrite an existing entry.
	KindExists

	// KindNotEmpty means remove was attempted on a folder with children.
	KindNotEmpty

	// KindBusy means remove or move named the root as the folder to
	// remove or move. (Creating the root, or moving onto it, reports
	// KindExists instead.)
	KindBusy

	// KindIntoOwnSubtree means move's target falls inside source's own
	// subtree.
	KindIntoOwnSubtree
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid path"
	case KindNotFound:
		return "not found"
	case KindExists:
		return "already exists"
	case KindNotEmpty:
		return "not empty"
	case KindBusy:
		return "root is busy"
	case KindIntoOwnSubtree:
		return "target is inside source's own subtree"
	default:
		return "ok"
	}
}

// Error is returned by every Tree operation that fails. Path2 is set only
// by Move, naming the target path.
type Error struct {
	Op    string
	Path  string
	Path2 string
	Kind  Kind
}

func (e *Error) Error() string {
	if e.Path2 != "" {
		return fmt.Sprintf("%s %s -> %s: %s", e.Op, e.Path, e.Path2, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
}

// Is reports whether target is a *Error of the same Kind, so callers can
// write errors.Is(err, &tree.Error{Kind: tree.KindNotFound}) style checks.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf extracts the Kind carried by err, if err is (or wraps) a *Error.
// It returns KindNone for nil or unrecognized errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
