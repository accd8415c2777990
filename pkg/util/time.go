package util

import "time"

// now is the clock used by the helpers below; tests may replace it.
var now = time.Now

// Time returns the current Unix time in seconds.
func Time() int64 {
	return now().Unix()
}

// UTime returns the current Unix time in microseconds with millisecond
// resolution (milliseconds * 1000).
func UTime() int64 {
	return now().UnixMilli() * 1000
}

// UCeilTime returns the next whole second in microseconds.
func UCeilTime() int64 {
	ms := now().UnixMilli()
	sec := ms / 1000
	if ms%1000 != 0 {
		sec++
	}
	return sec * 1000000
}
