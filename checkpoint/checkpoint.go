// Package checkpoint decorates errors with the source location they passed through
// on their way up the call stack, which results in something similar to a stacktrace.
// Each error added to a checkpoint can still be checked by errors.Is and retrieved by errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
)

// From records the location of the caller on err.
// It returns nil, if err == nil.
func From(err error) error {
	if err == nil || isPassthrough(err) {
		return err
	}

	return &checkpoint{
		prev:  err,
		frame: caller(),
	}
}

// Wrap records the location of the caller on prev and additionally marks it with err,
// which usually is a predefined sentinel describing the failed operation:
//
//	var (
//		ErrReadSomething = errors.New("could not read something")
//	)
//	func readSomething() error {
//		err := readTheBytes()
//		return checkpoint.Wrap(err, ErrReadSomething)
//	}
//
// Both errors.Is(err, ErrReadSomething) and errors.Is(err, <whatever readTheBytes returned>)
// hold for the result.
// Returns nil if prev == nil.
func Wrap(prev, err error) error {
	if prev == nil || isPassthrough(prev) {
		return prev
	}

	return &checkpoint{
		err:   err,
		prev:  prev,
		frame: caller(),
	}
}

// Frames lists the recorded locations of all checkpoints in the chain of err, outermost first.
func Frames(err error) []string {
	var frames []string
	for err != nil {
		var c *checkpoint
		if !errors.As(err, &c) {
			break
		}
		if c.frame != "" {
			frames = append(frames, c.frame)
		}
		err = c.prev
	}
	return frames
}

// isPassthrough reports errors which have to be returned as they are.
// Callers compare io.EOF by identity: https://github.com/golang/go/issues/39155
func isPassthrough(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

type checkpoint struct {
	err   error
	prev  error
	frame string
}

func (e *checkpoint) Error() string {
	if e.err == nil {
		return e.prev.Error()
	}
	return e.err.Error() + ": " + e.prev.Error()
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return e.err != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.err != nil && errors.As(e.err, target)
}
