package service

import "errors"

// Not-found conditions the handlers translate into 404 responses.
var (
	// ErrSubjectNotFound: a dependent entity referenced a subject that is
	// not present under its owner.
	ErrSubjectNotFound = errors.New("subject does not exist")
	// ErrTargetNotFound: the record addressed by an update does not exist.
	ErrTargetNotFound = errors.New("target record does not exist")
)
