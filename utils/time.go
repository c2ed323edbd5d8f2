package utils

import "time"

// TimestampFormat is the layout used for all created_at/updated_at
// fields stored in documents.
const TimestampFormat = "2006-01-02 15:04:05"

// NowStamp returns the current time formatted for storage.
func NowStamp() string {
	return time.Now().Format(TimestampFormat)
}
