package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgCharacterNotFound     = "character not found"
	ErrMsgQuestNotFound         = "quest not found"
	ErrMsgQuestAlreadyCompleted = "quest already completed"
	ErrMsgInvalidInput          = "invalid input"
	ErrMsgPartialFailure        = "partial failure"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrQuestNotFound     = errors.New(ErrMsgQuestNotFound)

	// ErrQuestAlreadyCompleted is returned by stores asked to write to a completed quest
	ErrQuestAlreadyCompleted = errors.New(ErrMsgQuestAlreadyCompleted)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// ErrPartialFailure marks an action where some quest updates committed and others did not
	ErrPartialFailure = errors.New(ErrMsgPartialFailure)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
