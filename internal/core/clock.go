package core

import "time"

// Clock supplies the current calendar date.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock in Location (UTC when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Today() Date {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(time.Now().In(loc))
}

// FixedClock always reports the same date.
type FixedClock Date

func (c FixedClock) Today() Date {
	return Date(c)
}
