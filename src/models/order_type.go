package models

import "strings"

// OrderType is the trading intent encoded in a trend line's comment.
type OrderType int

const (
	OrderTypeNone OrderType = iota
	OrderTypeBuy
	OrderTypeSell
	OrderTypeAlertBuy
	OrderTypeAlertSell
	OrderTypeCloseBuy
	OrderTypeCloseSell
)

func (o OrderType) String() string {
	switch o {
	case OrderTypeBuy:
		return "buy"
	case OrderTypeSell:
		return "sell"
	case OrderTypeAlertBuy:
		return "alertBuy"
	case OrderTypeAlertSell:
		return "alertSell"
	case OrderTypeCloseBuy:
		return "closeBuy"
	case OrderTypeCloseSell:
		return "closeSell"
	default:
		return "none"
	}
}

// IsBuySide reports whether the intent trails and triggers against the ask.
func (o OrderType) IsBuySide() bool {
	return o == OrderTypeBuy || o == OrderTypeAlertBuy
}

func (o OrderType) IsAlert() bool {
	return o == OrderTypeAlertBuy || o == OrderTypeAlertSell
}

func (o OrderType) IsClose() bool {
	return o == OrderTypeCloseBuy || o == OrderTypeCloseSell
}

// ParseComment maps a free-text line comment to an order intent plus the
// trail and triggered markers. Tokens are case-insensitive and
// order-independent; unrecognized tokens are ignored. A comment containing
// "hit" is inert: the intent resolves to none no matter what else it says.
func ParseComment(comment string) (orderType OrderType, isTrail bool, isTriggered bool) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(comment)))

	tokens := make(map[string]bool, len(words))
	for _, w := range words {
		tokens[w] = true
	}

	isTrail = tokens["trail"]
	isTriggered = tokens["hit"]

	if isTriggered {
		return OrderTypeNone, isTrail, true
	}

	switch {
	case tokens["buy"] && tokens["close"]:
		orderType = OrderTypeCloseBuy
	case tokens["sell"] && tokens["close"]:
		orderType = OrderTypeCloseSell
	case tokens["buy"] && tokens["alert"]:
		orderType = OrderTypeAlertBuy
	case tokens["sell"] && tokens["alert"]:
		orderType = OrderTypeAlertSell
	case tokens["buy"]:
		orderType = OrderTypeBuy
	case tokens["sell"]:
		orderType = OrderTypeSell
	default:
		orderType = OrderTypeNone
	}

	return orderType, isTrail, false
}
