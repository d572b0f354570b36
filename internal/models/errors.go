package models

import "errors"

// Custom errors
var (
	// ErrEmptyDataset signals that a join or filter produced zero rows. It is a
	// fatal precondition: the run cannot continue without data.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrTrainingData signals that the training set cannot support the requested
	// fit (missing feature column, or too few rows for the fold count).
	ErrTrainingData = errors.New("training data is unusable")

	// ErrNoGamesToday signals that the slate contains no games commencing today.
	ErrNoGamesToday = errors.New("no games scheduled today")

	ErrNotFound = errors.New("record not found")
)
