package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the base error wrapped by every input validation failure,
// so callers can classify with errors.Is without enumerating sentinels.
var ErrValidation = errors.New("validation")

var (
	ErrInvalidID          = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidOwnerID     = fmt.Errorf("%w: invalid owner id", ErrValidation)
	ErrInvalidName        = fmt.Errorf("%w: invalid name", ErrValidation)
	ErrInvalidTitle       = fmt.Errorf("%w: invalid title", ErrValidation)
	ErrInvalidText        = fmt.Errorf("%w: invalid text", ErrValidation)
	ErrInvalidPriority    = fmt.Errorf("%w: invalid priority", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidOrder       = fmt.Errorf("%w: invalid order", ErrValidation)
	ErrInvalidChecklistID = fmt.Errorf("%w: invalid checklist id", ErrValidation)
	ErrInvalidType        = fmt.Errorf("%w: invalid type", ErrValidation)
	ErrInvalidLevel       = fmt.Errorf("%w: invalid level", ErrValidation)
	ErrInvalidProgress    = fmt.Errorf("%w: progress out of range", ErrValidation)
	ErrInvalidScore       = fmt.Errorf("%w: score out of range", ErrValidation)
	ErrInvalidRating      = fmt.Errorf("%w: rating out of range", ErrValidation)
	ErrInvalidMetricType  = fmt.Errorf("%w: invalid metric type", ErrValidation)
	ErrInvalidDay         = fmt.Errorf("%w: day out of range", ErrValidation)
	ErrInvalidWeekStart   = fmt.Errorf("%w: invalid week start", ErrValidation)
)
