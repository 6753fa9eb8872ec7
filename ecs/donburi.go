package ecs

import (
	"github.com/phanxgames/gamefw"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InputNotificationType is the Donburi event type for gamefw input
// notifications.
var InputNotificationType = events.NewEventType[gamefw.InputNotification]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Notifications are published to InputNotificationType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) gamefw.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitInput(n gamefw.InputNotification) {
	InputNotificationType.Publish(s.world, n)
}
