package format

import "time"

// DOSTime converts an MS-DOS packed date/time pair to a time.Time.
//
// The packed layout is: date = year-1980(7) | month(4) | day(5),
// time = hours(5) | minutes(6) | seconds/2(5). ZIP headers store local time
// with two-second resolution and no zone, so the result uses time.Local.
func DOSTime(date, tm uint16) time.Time {
	year := int(date>>9) + 1980
	month := time.Month(date >> 5 & 0x0f)
	day := int(date & 0x1f)
	hour := int(tm >> 11)
	min := int(tm >> 5 & 0x3f)
	sec := int(tm&0x1f) * 2
	return time.Date(year, month, day, hour, min, sec, 0, time.Local)
}

// ModTime returns the entry modification time decoded from the header's
// MS-DOS date and time fields.
func (h *LocalFileHeader) ModTime() time.Time {
	return DOSTime(h.LastModDate, h.LastModTime)
}
