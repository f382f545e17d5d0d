package errors

import "fmt"

var (
	ErrNotAuthenticated   = fmt.Errorf("no authenticated participant")
	ErrNoConversation     = fmt.Errorf("no active conversation")
	ErrEmptyMessage       = fmt.Errorf("message is empty after trimming")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity rules")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrStoreUnavailable   = fmt.Errorf("store is not accepting writes")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)
