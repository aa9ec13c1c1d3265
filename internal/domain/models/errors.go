package models

import "errors"

var (
	ErrSourceNotFound = errors.New("data source not found")
	ErrNoTimeColumn   = errors.New("no recognizable time column in trader data")
	ErrNoDateColumn   = errors.New("no recognizable date column in sentiment data")
	ErrEmptyMerge     = errors.New("merged dataset is empty")
	ErrNoReport       = errors.New("no report available")
)
