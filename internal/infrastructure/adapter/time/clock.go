package time

import (
	"time"

	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
)

// Clock implements core.TimeProvider on the system clock, in UTC
type Clock struct{}

// NewClock creates the system clock
func NewClock() core.TimeProvider {
	return Clock{}
}

func (Clock) Now() time.Time {
	return time.Now().UTC()
}

func (Clock) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}
