package models

import "errors"

// Operation errors surfaced to the user. Unknown-id operations are silent
// no-ops and have no error value on purpose.
var (
	ErrDuplicateSingleton = errors.New("a field of this type already exists")
	ErrLastContactMethod  = errors.New("at least one contact method (email or phone) is required")
	ErrUnlabeledField     = errors.New("field has no label")
	ErrMatrixMinimum      = errors.New("rating matrix needs at least 1 row and 2 levels")
	ErrUnknownFieldType   = errors.New("unknown field type")
	ErrUnknownStyle       = errors.New("unknown content block style")
	ErrUnknownProfileKey  = errors.New("unknown profile key")
)
