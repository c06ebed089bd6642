// Package libtime provides the time host module.  Times are opaque host
// values.  Durations are integer nanoseconds, as returned by sub.
package libtime

import (
	"time"

	"github.com/kaa-lang/kaa/lisp"
)

// DefaultModuleName is the module name used by LoadModule.
const DefaultModuleName = "time"

// LoadModule registers the time module with s.
func LoadModule(s *lisp.Session) error {
	s.RegisterModule(Module())
	return nil
}

// Module returns a new time module.
func Module() *lisp.Module {
	return lisp.NewModule(DefaultModuleName).
		FuncAs("utc-now", UTCNow).
		FuncAs("parse-rfc3339", ParseRFC3339).
		FuncAs("parse-rfc3339-nano", ParseRFC3339Nano).
		FuncAs("format-rfc3339", FormatRFC3339).
		FuncAs("format-rfc3339-nano", FormatRFC3339Nano).
		Func("Unix", Unix).
		Func("Sub", Sub).
		FuncAs("duration", DurationSeconds).
		FuncAs("duration-ms", DurationMS)
}

// Get gets a time.Time value from v and returns it.
func Get(v lisp.Value) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}

func UTCNow() time.Time {
	return time.Now().UTC()
}

func ParseRFC3339(stamp string) (time.Time, error) {
	return time.Parse(time.RFC3339, stamp)
}

func ParseRFC3339Nano(stamp string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, stamp)
}

func FormatRFC3339(t time.Time) string {
	return t.Format(time.RFC3339)
}

func FormatRFC3339Nano(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// Unix returns t as the number of seconds elapsed since January 1, 1970 UTC.
func Unix(t time.Time) int64 {
	return t.Unix()
}

// Sub returns the number of nanoseconds between start and end.
func Sub(end, start time.Time) int64 {
	return int64(end.Sub(start))
}

// DurationSeconds returns a float equal to the number of seconds in the
// duration ns.
func DurationSeconds(ns int64) float64 {
	return time.Duration(ns).Seconds()
}

// DurationMS returns the number of whole milliseconds in the duration ns.
func DurationMS(ns int64) int64 {
	return time.Duration(ns).Milliseconds()
}
