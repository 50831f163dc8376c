package calculation

import "time"

// nowFunc stamps comparisons (override in tests for stable output).
var nowFunc = time.Now

// SetNowFunc overrides the time provider and returns a restore func (tests only).
func SetNowFunc(f func() time.Time) (restore func()) {
	prev := nowFunc
	nowFunc = f
	return func() { nowFunc = prev }
}
