package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInstanceNotFound   = errors.New("application instance not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrIdentityResolution = errors.New("identity resolution failed")
	ErrVoiceProcessing    = errors.New("voice processing failed")
)
