package habit

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("habit not found")
	ErrCorruptData     = errors.New("corrupt habit data")
)
