package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrReferenceInvalid = errors.New("a resource ID you specified did not identify an existing resource")
)
