package internal

import (
	"strconv"
	"strings"
	"time"
)

// TruncateDuration keeps the three most significant digits of d.
func TruncateDuration(d time.Duration) time.Duration {
	magnitude := time.Duration(1)
	for {
		if magnitude > d {
			return d.Truncate(magnitude / 1000)
		}
		magnitude = magnitude * 10
	}
}

// A year is 365.25 days and a month is a twelfth of that, as in humantime.
var durationUnits = []struct {
	suffix string
	plural string
	size   time.Duration
}{
	{"year", "years", 31557600 * time.Second},
	{"month", "months", 2630016 * time.Second},
	{"day", "days", 24 * time.Hour},
	{"h", "h", time.Hour},
	{"m", "m", time.Minute},
	{"s", "s", time.Second},
	{"ms", "ms", time.Millisecond},
	{"us", "us", time.Microsecond},
	{"ns", "ns", time.Nanosecond},
}

// FormatDuration renders d as its nonzero units separated by spaces, e.g.
// "1s 234ms 5us" or "2days 3h". Zero is "0s".
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	sep := ""
	for _, u := range durationUnits {
		n := d / u.size
		if n == 0 {
			continue
		}
		d -= n * u.size
		b.WriteString(sep)
		sep = " "
		b.WriteString(strconv.FormatInt(int64(n), 10))
		if n == 1 {
			b.WriteString(u.suffix)
		} else {
			b.WriteString(u.plural)
		}
	}
	return b.String()
}

// errStr returns "" if err is nil or err.Error() otherwise.
func errStr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
