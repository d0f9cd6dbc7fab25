package message

import "fmt"

// ReadBeyondSizeError reports a read that would cross the message's
// logical end.
type ReadBeyondSizeError struct {
	LogicalEnd int
	Cursor     int
	Requested  int
}

func (e *ReadBeyondSizeError) Error() string {
	return fmt.Sprintf("message: read beyond size: logical_end=%d cursor=%d requested=%d",
		e.LogicalEnd, e.Cursor, e.Requested)
}

// UnknownTypeError reports an opcode byte absent from the dispatch table.
type UnknownTypeError struct {
	Opcode byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("message: unknown type %d", e.Opcode)
}

// UnhandledTypeError reports a known opcode with no registered decoder.
type UnhandledTypeError struct {
	Kind string
}

func (e *UnhandledTypeError) Error() string {
	return fmt.Sprintf("message: unhandled type %s", e.Kind)
}

// UnhandledCommandError reports an MVD frame command byte outside 0..7.
type UnhandledCommandError struct {
	Command byte
}

func (e *UnhandledCommandError) Error() string {
	return fmt.Sprintf("message: unhandled command %d", e.Command)
}

// ErrQwdCommand reports a legacy QWD-only command byte in an MVD stream.
var ErrQwdCommand = fmt.Errorf("message: qwd command in mvd stream")

// ErrBadRead reports a decoder that explicitly refused to progress.
var ErrBadRead = fmt.Errorf("message: bad read")

// StringError carries a human-readable parse failure (malformed challenge
// text, an out-of-range enum conversion, and similar textual failures).
type StringError struct {
	Msg string
}

func (e *StringError) Error() string {
	return "message: " + e.Msg
}

func stringErrorf(format string, args ...any) error {
	return &StringError{Msg: fmt.Sprintf(format, args...)}
}
