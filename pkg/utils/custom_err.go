package utils

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrAttendantNotFound  = errors.New("attendant not found")
	ErrGroupCapacityFull  = errors.New("group capacity exceeded")
	ErrUnknownFace        = errors.New("face did not match any attendant")
	ErrEmbeddingDimension = errors.New("embedding has wrong dimension")
	ErrMissingRequired    = errors.New("missing required field")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoFaceFound        = errors.New("no face found in image")
	ErrDatabaseError      = errors.New("database error")
)
