// Package ecs provides ECS adapters for gamefw's input notifications.
//
// The primary adapter is [NewDonburiSink], which bridges every input
// callback that runs during InputConfiguration.Update (button press, hold
// and release, visual button clicks, gesture events) into a [Donburi] world
// as typed events. Subscribe to [InputNotificationType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	input.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
