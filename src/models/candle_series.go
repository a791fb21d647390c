package models

import "time"

// CandleSeries keeps a bounded rolling window of candles on one timeframe.
// Candles are bucketed by open time; the last candle is the forming bar.
type CandleSeries struct {
	Timeframe Timeframe
	MaxLength int

	candles []*Candle
}

func NewCandleSeries(tf Timeframe, maxLength int) *CandleSeries {
	return &CandleSeries{
		Timeframe: tf,
		MaxLength: maxLength,
	}
}

// Update folds a price into the forming bar, rolling to a new bar when the
// tick falls into a later bucket. Returns true when a new bar was opened.
func (s *CandleSeries) Update(t time.Time, price float64) bool {
	bucket := t.Truncate(s.Timeframe.Duration())

	if len(s.candles) == 0 {
		s.candles = append(s.candles, NewCandle(bucket, price))
		return false
	}

	last := s.candles[len(s.candles)-1]
	if !bucket.After(last.Timestamp) {
		last.Update(t, price)
		return false
	}

	s.candles = append(s.candles, NewCandle(bucket, price))
	if s.MaxLength > 0 && len(s.candles) > s.MaxLength {
		s.candles = s.candles[len(s.candles)-s.MaxLength:]
	}

	return true
}

// Bars returns a copy of the window, oldest first, forming bar last.
func (s *CandleSeries) Bars() []Candle {
	bars := make([]Candle, 0, len(s.candles))
	for _, c := range s.candles {
		bars = append(bars, *c)
	}
	return bars
}

// LastCompleted returns the most recent closed bar, if one exists.
func (s *CandleSeries) LastCompleted() (Candle, bool) {
	if len(s.candles) < 2 {
		return Candle{}, false
	}
	return *s.candles[len(s.candles)-2], true
}
