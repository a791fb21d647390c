package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseComment(t *testing.T) {
	t.Run("resolves each intent", func(t *testing.T) {
		cases := map[string]OrderType{
			"buy":        OrderTypeBuy,
			"sell":       OrderTypeSell,
			"buy close":  OrderTypeCloseBuy,
			"close sell": OrderTypeCloseSell,
			"alert buy":  OrderTypeAlertBuy,
			"sell alert": OrderTypeAlertSell,
			"":           OrderTypeNone,
			"resistance": OrderTypeNone,
		}

		for comment, expected := range cases {
			orderType, _, _ := ParseComment(comment)
			require.Equal(t, expected, orderType, "comment %q", comment)
		}
	})

	t.Run("close and alert modify buy and sell regardless of token order", func(t *testing.T) {
		first, _, _ := ParseComment("close buy")
		second, _, _ := ParseComment("buy close")
		require.Equal(t, OrderTypeCloseBuy, first)
		require.Equal(t, first, second)
	})

	t.Run("close wins over alert", func(t *testing.T) {
		orderType, _, _ := ParseComment("buy close alert")
		require.Equal(t, OrderTypeCloseBuy, orderType)
	})

	t.Run("case and surrounding whitespace are ignored", func(t *testing.T) {
		orderType, isTrail, _ := ParseComment("  BUY   Trail ")
		require.Equal(t, OrderTypeBuy, orderType)
		require.True(t, isTrail)
	})

	t.Run("unrecognized tokens are ignored, not errors", func(t *testing.T) {
		orderType, _, _ := ParseComment("weekly buy breakout zone")
		require.Equal(t, OrderTypeBuy, orderType)
	})

	t.Run("hit forces none even if the comment still says buy", func(t *testing.T) {
		orderType, isTrail, isTriggered := ParseComment("buy trail hit")
		require.Equal(t, OrderTypeNone, orderType)
		require.True(t, isTrail)
		require.True(t, isTriggered)
	})

	t.Run("trail is independent of intent", func(t *testing.T) {
		orderType, isTrail, isTriggered := ParseComment("trail")
		require.Equal(t, OrderTypeNone, orderType)
		require.True(t, isTrail)
		require.False(t, isTriggered)
	})

	t.Run("idempotent", func(t *testing.T) {
		for _, comment := range []string{"buy", "sell close", "trail hit", "garbage"} {
			o1, t1, h1 := ParseComment(comment)
			o2, t2, h2 := ParseComment(comment)
			require.Equal(t, o1, o2)
			require.Equal(t, t1, t2)
			require.Equal(t, h1, h2)
		}
	})
}
