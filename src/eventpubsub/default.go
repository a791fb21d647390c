package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

var bus EventBus.Bus

func Init() {
	bus = EventBus.New()
}

func Publish(topic string, event interface{}) {
	bus.Publish(topic, event)
}

// Subscribe registers a synchronous handler. Synchronous delivery keeps the
// registry's single-writer ordering guarantee: an annotation event is fully
// applied before the next tick is observed.
func Subscribe(topic string, callbackFn interface{}) error {
	if err := bus.Subscribe(topic, callbackFn); err != nil {
		return err
	}

	log.Infof("Subscribed to topic %s", topic)
	return nil
}

func Unsubscribe(topic string, callbackFn interface{}) error {
	return bus.Unsubscribe(topic, callbackFn)
}
