package models

import "time"

// LineColor is the display treatment applied to a tracked line.
type LineColor string

const (
	LineColorBuy      LineColor = "dodgerblue"
	LineColorSell     LineColor = "red"
	LineColorAlert    LineColor = "magenta"
	LineColorClose    LineColor = "green"
	LineColorInactive LineColor = "gray"
)

// ColorForOrderType returns the display color for an intent. The second
// return is false when the intent carries no treatment of its own.
func ColorForOrderType(o OrderType) (LineColor, bool) {
	switch o {
	case OrderTypeBuy:
		return LineColorBuy, true
	case OrderTypeSell:
		return LineColorSell, true
	case OrderTypeAlertBuy, OrderTypeAlertSell:
		return LineColorAlert, true
	case OrderTypeCloseBuy, OrderTypeCloseSell:
		return LineColorClose, true
	default:
		return "", false
	}
}

// TrendLine is a value snapshot of a chart trend-line annotation. The
// annotation itself is owned by the chart host; the engine only observes it
// through update/remove notifications and writes back through Chart.
type TrendLine struct {
	Name    string
	Comment string
	Color   LineColor
	Time1   time.Time
	Y1      float64
	Time2   time.Time
	Y2      float64
}

// CalculateY interpolates the line's price at time t. A zero-duration line
// is degenerate and evaluates to Y1 for all times.
func (l TrendLine) CalculateY(t time.Time) float64 {
	if l.Time2.Equal(l.Time1) {
		return l.Y1
	}

	slope := (l.Y2 - l.Y1) / l.Time2.Sub(l.Time1).Seconds()
	return l.Y1 + slope*t.Sub(l.Time1).Seconds()
}
