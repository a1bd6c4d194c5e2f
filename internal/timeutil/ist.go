package timeutil

import "time"

// IST is the Indian Standard Time location (UTC+5:30). All dates in the
// data files are shop-local.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// Today returns today's date in the ledger date layout.
func Today() string {
	return Now().Format(DateLayout)
}

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
	DisplayLayout   = "02 Jan 2006, 03:04 PM"
)
