package domain

import "time"

// Half-open availability interval. Either bound may be nil (open-ended).
type TimeWindow struct {
	Start *time.Time
	End   *time.Time
}
