package models

import "github.com/kataras/go-events"

// Event names emitted by the feed worker on bar rolls.
const (
	NewBarEvent events.EventName = "newBar"
)
