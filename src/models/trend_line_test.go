package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrendLineCalculateY(t *testing.T) {
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("horizontal line evaluates to its level everywhere", func(t *testing.T) {
		line := TrendLine{
			Time1: start,
			Y1:    1.1000,
			Time2: start.Add(100 * time.Second),
			Y2:    1.1000,
		}

		require.Equal(t, 1.1000, line.CalculateY(start.Add(50*time.Second)))
	})

	t.Run("diagonal line interpolates between endpoints", func(t *testing.T) {
		line := TrendLine{
			Time1: start,
			Y1:    1.1000,
			Time2: start.Add(100 * time.Second),
			Y2:    1.2000,
		}

		require.InDelta(t, 1.1500, line.CalculateY(start.Add(50*time.Second)), 1e-9)
		require.InDelta(t, 1.1000, line.CalculateY(start), 1e-9)
		require.InDelta(t, 1.2000, line.CalculateY(start.Add(100*time.Second)), 1e-9)
	})

	t.Run("extrapolates beyond the endpoints", func(t *testing.T) {
		line := TrendLine{
			Time1: start,
			Y1:    1.1000,
			Time2: start.Add(100 * time.Second),
			Y2:    1.2000,
		}

		require.InDelta(t, 1.3000, line.CalculateY(start.Add(200*time.Second)), 1e-9)
	})

	t.Run("zero-duration line is constant, not a division by zero", func(t *testing.T) {
		line := TrendLine{
			Time1: start,
			Y1:    1.1000,
			Time2: start,
			Y2:    1.5000,
		}

		for _, offset := range []time.Duration{0, time.Second, time.Hour, -time.Hour} {
			price := line.CalculateY(start.Add(offset))
			require.Equal(t, 1.1000, price)
		}
	})
}
