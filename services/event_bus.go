package services

import (
	"log"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/models"
)

// EventBus fans meal changes out to the owning session's websockets.
// The zero value and a nil *EventBus drop events.
type EventBus struct {
	rt *RealtimeHub
}

func NewEventBus(rt *RealtimeHub) *EventBus {
	return &EventBus{rt: rt}
}

func (b *EventBus) Publish(sessionID string, ev models.MealEvent) { // safe to call anywhere
	if b == nil || b.rt == nil {
		return
	}
	if err := b.rt.Broadcast(sessionID, ev); err != nil {
		log.Printf("event bus: %s for meal %s: %v", ev.Kind, ev.MealID, err)
	}
}
