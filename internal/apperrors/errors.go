package apperrors

import (
	"errors"
)

var (
	ErrNoCredentials = errors.New("no stored credentials")
	ErrUnauthorized  = errors.New("unauthorized")

	ErrMissingTempToken = errors.New("registration temp token missing, flow must restart")
	ErrMissingUserID    = errors.New("registration user id missing, flow must restart")
	ErrWizardComplete   = errors.New("registration already complete")

	ErrRequestNotFound = errors.New("follow request not found")
	ErrUploadFailed    = errors.New("image upload failed")
)
