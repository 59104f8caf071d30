// Package reactive provides the observable core for Axon.
//
// Observables hold or compute a value and notify registered observers when it
// changes. Notifications are pure "re-pull" signals: an observer receives no
// payload and calls Get itself to learn the new value. Lists notify with a
// range patch descriptor instead.
//
// # Core Types
//
// Reactive[T] is a mutable scalar:
//
//	name := reactive.New("world")
//	name.AddObserver(obs)
//	name.Set("gopher") // obs.Update() runs before Set returns
//	name.Set("gopher") // equal value: no notification
//
// Map derives a value from other observables without caching it:
//
//	greeting := reactive.Map(name, func(n string) string { return "hello " + n })
//	greeting.AddObserver(obs) // registers obs on name
//
// ReactiveList[T] notifies ListObservers with (start, deleteCount, insertedCount):
//
//	todos := reactive.NewList("a", "b")
//	todos.Push("c") // observers see UpdateRange(2, 0, 1)
//
// # Concurrency
//
// Notification cascades are synchronous and depth first. Nothing in this
// package is safe for concurrent use; callers serialize access, typically by
// running all mutations on a single event loop.
package reactive
