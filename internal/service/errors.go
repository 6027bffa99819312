package service

import "errors"

// ErrForbidden marks an operation rejected by project-membership checks.
var ErrForbidden = errors.New("user is not a member of the project")

// ErrInvalidStatus marks a status string outside the accepted set.
var ErrInvalidStatus = errors.New("invalid task status")
