package utils

import "time"

var istLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}()

// FormatIST renders timestamps the way the admin frontend expects them.
func FormatIST(t time.Time) string {
	return t.In(istLocation).Format("2/1/2006, 3:04:05 pm")
}
