package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	// Zone lookups must not depend on the host tz database.
	_ "time/tzdata"
)

// localLayouts are accepted when the date-time carries no UTC offset.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// ParseZoned parses a date-time annotated with its time zone, e.g.
// "2024-03-05T10:00:00+01:00[Europe/Paris]". The annotation is an IANA zone
// name or a fixed offset. When an offset precedes the annotation it must
// agree with the zone at that instant.
func ParseZoned(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	open := strings.LastIndexByte(value, '[')
	if open < 0 || !strings.HasSuffix(value, "]") {
		return time.Time{}, fmt.Errorf("%w: %q lacks a [zone] annotation", ErrInvalidDateTime, value)
	}
	stamp, zone := value[:open], value[open+1:len(value)-1]

	loc, err := loadZone(zone)
	if err != nil {
		return time.Time{}, err
	}

	if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
		_, offset := t.Zone()
		zoned := t.In(loc)
		if _, want := zoned.Zone(); offset != want {
			return time.Time{}, fmt.Errorf("%w: offset of %q disagrees with zone %s", ErrInvalidDateTime, stamp, zone)
		}
		return zoned, nil
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, stamp, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidDateTime, stamp)
}

// loadZone resolves an IANA name or a "+HH:MM" style offset.
func loadZone(zone string) (*time.Location, error) {
	if zone == "" || zone == "Local" {
		return nil, fmt.Errorf("%w: invalid zone %q", ErrInvalidDateTime, zone)
	}
	if zone[0] == '+' || zone[0] == '-' {
		return fixedZone(zone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateTime, err)
	}
	return loc, nil
}

func fixedZone(zone string) (*time.Location, error) {
	hh, mm, ok := strings.Cut(zone[1:], ":")
	if !ok && len(hh) == 4 {
		hh, mm = hh[:2], hh[2:]
	}
	if mm == "" {
		mm = "00"
	}
	hours, herr := strconv.Atoi(hh)
	minutes, merr := strconv.Atoi(mm)
	if herr != nil || merr != nil || len(hh) != 2 || len(mm) != 2 || hours > 23 || minutes > 59 {
		return nil, fmt.Errorf("%w: invalid offset %q", ErrInvalidDateTime, zone)
	}
	secs := hours*3600 + minutes*60
	if zone[0] == '-' {
		secs = -secs
	}
	return time.FixedZone(zone, secs), nil
}
