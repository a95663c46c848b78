// Package reproducible provides otherwise-nondeterministic inputs in a form
// that supports reproducible output.
package reproducible

import (
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	nowOnce sync.Once
	now     time.Time
)

// Now returns the current time, unless the SOURCE_DATE_EPOCH environment
// variable is set, in which case it returns that time.
//
// https://reproducible-builds.org/docs/source-date-epoch/
func Now() time.Time {
	nowOnce.Do(func() {
		secs, err := strconv.ParseInt(os.Getenv("SOURCE_DATE_EPOCH"), 10, 64)
		if err == nil {
			now = time.Unix(secs, 0)
		} else {
			now = time.Now()
		}
	})
	return now
}
