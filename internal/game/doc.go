// Package game implements the climb-or-cut interaction on top of the
// pendulum chain.
//
// A [Game] is not safe for concurrent use. Exactly one goroutine should own
// it and feed it input through [Game.Apply]; front ends on other goroutines
// receive immutable [Frame] values from [Game.Snapshot].
package game
