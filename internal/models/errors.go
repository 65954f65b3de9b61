package models

import "errors"

// Custom errors
var (
	ErrEmptyInput    = errors.New("no race data found in pasted text")
	ErrRangeNotFound = errors.New("place odds range not found")
	ErrPickNotFound  = errors.New("pick not found")
	ErrNoSelection   = errors.New("pick has no selected runner")
)
