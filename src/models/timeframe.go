package models

import (
	"fmt"
	"time"
)

// Timeframe is a bar duration in minutes.
type Timeframe int

const (
	TimeframeM1  Timeframe = 1
	TimeframeM5  Timeframe = 5
	TimeframeM15 Timeframe = 15
	TimeframeM30 Timeframe = 30
	TimeframeH1  Timeframe = 60
	TimeframeH4  Timeframe = 240
	TimeframeD1  Timeframe = 1440
)

const DefaultTimeframe = TimeframeM1

var InvalidTimeframeErr = fmt.Errorf("invalid timeframe")

func (tf Timeframe) Duration() time.Duration {
	return time.Duration(tf) * time.Minute
}

func (tf Timeframe) String() string {
	if tf >= TimeframeD1 && tf%TimeframeD1 == 0 {
		return fmt.Sprintf("d%d", tf/TimeframeD1)
	}
	if tf >= TimeframeH1 && tf%TimeframeH1 == 0 {
		return fmt.Sprintf("h%d", tf/TimeframeH1)
	}
	return fmt.Sprintf("m%d", tf)
}

func (tf Timeframe) Validate() error {
	if tf <= 0 {
		return InvalidTimeframeErr
	}
	return nil
}

// ParseTimeframe converts strings like "m5", "h1" or "d1" to a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	var unit byte
	var n int
	if _, err := fmt.Sscanf(s, "%c%d", &unit, &n); err != nil {
		return 0, fmt.Errorf("ParseTimeframe: %q: %w", s, InvalidTimeframeErr)
	}

	if n <= 0 {
		return 0, fmt.Errorf("ParseTimeframe: %q: %w", s, InvalidTimeframeErr)
	}

	switch unit {
	case 'm':
		return Timeframe(n), nil
	case 'h':
		return Timeframe(n) * TimeframeH1, nil
	case 'd':
		return Timeframe(n) * TimeframeD1, nil
	default:
		return 0, fmt.Errorf("ParseTimeframe: %q: %w", s, InvalidTimeframeErr)
	}
}
