// Package tictoc measures execution progress of long-running loops: elapsed
// time, average speed and estimated completion.
package tictoc

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Interval is a duration between two instants.
type Interval time.Duration

func (i Interval) Duration() time.Duration {
	return time.Duration(i)
}

func (i Interval) Seconds() float64 {
	return time.Duration(i).Seconds()
}

func (i Interval) Minutes() float64 {
	return i.Seconds() / 60
}

func (i Interval) Hours() float64 {
	return i.Seconds() / 3600
}

func (i Interval) Days() float64 {
	return i.Seconds() / 86400
}

// String renders the interval as "12.3 s" below a minute, "HH:MM:SS" below a
// day and "D.HH:MM:SS" beyond that.
func (i Interval) String() string {
	sec := i.Seconds()

	switch {
	case sec < 60:
		return strconv.FormatFloat(roundSignificant(sec, 3), 'f', -1, 64) + " s"
	case sec < 86400:
		return fmt.Sprintf("%02d:%02d:%02d",
			int(sec/3600),
			int(math.Mod(sec, 3600)/60),
			int(math.Mod(sec, 60)),
		)
	default:
		return fmt.Sprintf("%d.%02d:%02d:%02d",
			int(sec/86400),
			int(math.Mod(sec, 86400)/3600),
			int(math.Mod(sec, 3600)/60),
			int(math.Mod(sec, 60)),
		)
	}
}

func roundSignificant(v float64, digits int) float64 {
	if v <= 0 {
		return v
	}

	actual := int(math.Floor(math.Log10(v))) + 1
	pow := math.Pow(10, float64(digits-actual))

	return math.Round(v*pow) / pow
}
