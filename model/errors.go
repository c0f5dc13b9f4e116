package model

import "errors"

var (
	ErrBadTopicNum   = errors.New("model: topic number must be positive")
	ErrEmptyInput    = errors.New("model: input matrix must have at least one document and one word")
	ErrNegativeCount = errors.New("model: counts must be finite and non-negative")
	ErrBadParams     = errors.New("model: max iteration must be positive and epsilon non-negative")
	ErrNoCandidates  = errors.New("model: no candidate topic numbers")
)
