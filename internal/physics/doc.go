// Package physics provides the pendulum chain simulated by the game.
//
// A [Chain] is an ordered set of [Body] values hung end to end: every body
// after the first swings from the bob of its predecessor until it is cut,
// after which it falls on its own.
//
//   - [Body]: a single damped pendulum integrated with one explicit Euler
//     step per tick
//   - [Chain]: the ordered bodies plus the re-anchoring rule
//
// All quantities are in per-tick units: gravity is added to velocities once
// per tick and velocities are added to positions once per tick, so the
// motion depends on the frame rate of whoever drives [Chain.Step].
//
// # Example
//
//	chain := physics.NewChain(400, 50)
//	for i := 0; i < 60; i++ {
//	    chain.Step(9.81)
//	}
//
// # Numeric Edge Cases
//
// Nothing here guards against a zero length or extreme gravity. Such input
// produces NaN or Inf which then propagates; use [Body.Valid] to detect it.
package physics
