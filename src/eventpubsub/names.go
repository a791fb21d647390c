package eventpubsub

const (
	NewTickEvent      = "NewTickEvent"
	LineUpdatedEvent  = "LineUpdatedEvent"
	LineRemovedEvent  = "LineRemovedEvent"
	LineSignalEvent   = "LineSignalEvent"
	AlertSignalEvent  = "AlertSignalEvent"
	StatusChangeEvent = "StatusChangeEvent"
	Error             = "DefaultError"
)
