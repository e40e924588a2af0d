package errors

import "errors"

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectConflict    = errors.New("project conflict")
	ErrInvalidProjectData = errors.New("invalid project data")

	ErrMemberNotFound    = errors.New("project member not found")
	ErrMemberConflict    = errors.New("project member conflict")
	ErrInvalidMemberData = errors.New("invalid project member data")
)
