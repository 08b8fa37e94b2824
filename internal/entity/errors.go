package entity

import "errors"

// Domain errors
var (
	// Survey errors
	ErrSurveyNotFound   = errors.New("survey not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyGoal        = errors.New("goal must not be empty")
	ErrGeneration       = errors.New("survey generation failed")

	// Interview errors
	ErrInterviewNotFound = errors.New("interview not found")
	ErrInterviewFinished = errors.New("interview is already finished")
	ErrTurnInProgress    = errors.New("a turn is already in progress")
	ErrIncompleteMatrix  = errors.New("every matrix row requires a selection")
	ErrInvalidScaleValue = errors.New("scale value must be between 1 and 5")
	ErrEmptyAnswer       = errors.New("answer must not be empty")
	ErrUnknownAnswerKind = errors.New("unknown answer kind")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
