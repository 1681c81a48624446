package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrNoReport           = errors.New("no current report")
	ErrInvalidInput       = errors.New("invalid input")
	ErrFileTooLarge       = errors.New("file too large")
	ErrAnalysisFailed     = errors.New("sleep analysis failed")
	ErrHistoryUnavailable = errors.New("sleep history unavailable")
)
