package tictoc

import "strconv"

// Speed is a processing rate in operations per second.
type Speed float64

func (s Speed) PerSecond() float64 {
	return float64(s)
}

func (s Speed) PerMinute() float64 {
	return float64(s) * 60
}

func (s Speed) PerHour() float64 {
	return float64(s) * 3600
}

func (s Speed) PerDay() float64 {
	return float64(s) * 86400
}

func (s Speed) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}
