package dashboard

import "errors"

// ErrStatsUnavailable is returned when the incident store cannot be counted.
var ErrStatsUnavailable = errors.New("dashboard statistics unavailable")
