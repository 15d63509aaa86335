package mipmap

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of a run
type Kind int

const (
	KindUnknown Kind = iota
	UsageError
	ConfigError
	DecodeError
	FilesystemError
	EncodeError
	ProcessError
	// Interrupted means the run's context was canceled before it finished
	Interrupted
)

func (k Kind) String() string {
	switch k {
	case UsageError:
		return "usage error"
	case ConfigError:
		return "config error"
	case DecodeError:
		return "decode error"
	case FilesystemError:
		return "filesystem error"
	case EncodeError:
		return "encode error"
	case ProcessError:
		return "preprocessing error"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown error"
	}
}

// Error is returned by every fallible step of a run
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind, the failing operation and the path it touched
func NewError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Usagef builds a UsageError with a formatted message
func Usagef(format string, args ...any) *Error {
	return &Error{Kind: UsageError, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain, or KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
