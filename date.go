package govff

import (
	"time"
)

// ParseDate decodes a 16 bit DOS date stamp of a directory record:
//
//	Bits 0-4:  day of month, 1-31
//	Bits 5-8:  month of year, 1-12
//	Bits 9-15: years since 1980, 0-127
//
// The result is always at 00:00:00 UTC.
//
// A day or month of 0 is invalid and yields time.Time{}, so time.Time.IsZero() can be used to detect it.
// Months above 12 roll over into the following year, the way time.Date normalizes them.
func ParseDate(input uint16) time.Time {
	day := int(input & 0x1F)
	month := int(input >> 5 & 0x0F)
	year := 1980 + int(input>>9)

	if day == 0 || month == 0 {
		return time.Time{}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a 16 bit DOS time stamp of a directory record:
//
//	Bits 0-4:   2 second count, 0-29
//	Bits 5-10:  minutes, 0-59
//	Bits 11-15: hours, 0-23
//
// The result is always on January 1, year 1, so midnight is time.Time{}.
//
// Out of range fields are added up but the result never passes 23:59:59.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := int(input >> 5 & 0x3F)
	hours := int(input >> 11)

	total := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if limit := 24*time.Hour - time.Second; total > limit {
		total = limit
	}

	return time.Time{}.Add(total)
}

// parseTimestamp combines a date, a time and the optional 10ms fine resolution byte.
// It returns time.Time{} if the date is invalid.
func parseTimestamp(date, tm uint16, fine byte) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}
	}

	// The fine byte covers the odd second lost by the 2 second granularity, 0-199.
	if fine > 199 {
		fine = 199
	}

	t := ParseTime(tm)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC).
		Add(time.Duration(fine) * 10 * time.Millisecond)
}
