package store

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrMissingIndex    = errors.New("missing item index")
	ErrInvalidIndex    = errors.New("invalid item index")
	ErrIndexOutOfRange = errors.New("item index out of range")
)

// IndexError describes a rejected 1-based index argument.
type IndexError struct {
	Arg string
	Len int
	Err error
}

func (e *IndexError) Error() string {
	switch e.Err {
	case ErrMissingIndex:
		return e.Err.Error()
	case ErrIndexOutOfRange:
		return fmt.Sprintf("%s: %s (list has %d items)", e.Err, e.Arg, e.Len)
	default:
		return fmt.Sprintf("%s: %q", e.Err, e.Arg)
	}
}

func (e *IndexError) Unwrap() error { return e.Err }

// ResolveIndex turns a 1-based index argument into a position in a list of
// n tasks. "0" and anything past n are out of range.
func ResolveIndex(arg string, n int) (int, error) {
	if arg == "" {
		return 0, &IndexError{Arg: arg, Len: n, Err: ErrMissingIndex}
	}
	v, err := strconv.ParseUint(arg, 10, 0)
	if err != nil {
		return 0, &IndexError{Arg: arg, Len: n, Err: ErrInvalidIndex}
	}
	if v == 0 || v > uint64(n) {
		return 0, &IndexError{Arg: arg, Len: n, Err: ErrIndexOutOfRange}
	}
	return int(v - 1), nil
}

// IndexArg resolves the first positional argument.
func IndexArg(args []string, n int) (int, error) {
	if len(args) == 0 {
		return 0, &IndexError{Len: n, Err: ErrMissingIndex}
	}
	return ResolveIndex(args[0], n)
}
