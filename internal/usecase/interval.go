package usecase

import (
	"fmt"
	"time"

	"TickLens/internal/domain/models"
	"TickLens/pkg/util"
)

// Units accepted for interval resolution.
const (
	UnitSeconds = "seconds"
	UnitMinutes = "minutes"
)

// ResolveInterval turns a start instant string plus a positive duration into
// a half-open [start, end) window. No side effects.
func ResolveInterval(t1 string, duration int64, unit string) (models.Interval, error) {
	start, ok := util.ParseTime(t1)
	if !ok {
		return models.Interval{}, fmt.Errorf("%w: t1 %q is not a valid instant", models.ErrInvalidInterval, t1)
	}
	if duration <= 0 {
		return models.Interval{}, fmt.Errorf("%w: duration must be positive, got %d", models.ErrInvalidInterval, duration)
	}

	var d time.Duration
	switch unit {
	case UnitSeconds:
		d = time.Duration(duration) * time.Second
	case UnitMinutes:
		d = time.Duration(duration) * time.Minute
	default:
		return models.Interval{}, fmt.Errorf("%w: unit must be %q or %q, got %q", models.ErrInvalidInterval, UnitSeconds, UnitMinutes, unit)
	}

	return models.Interval{Start: start, End: start.Add(d)}, nil
}
