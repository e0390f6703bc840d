package utils

import "time"

// Vietnam time location (ICT, +07:00), the zone the client renders dates in.
var vnLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Ho_Chi_Minh"); err == nil {
		return loc
	}
	return time.FixedZone("ICT", 7*3600)
}()

// FormatRFC3339VN renders t in ICT, or "" for the zero time.
func FormatRFC3339VN(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(vnLoc).Format(time.RFC3339)
}
