// Package viz draws the climbing game in a terminal.
//
// The package implements the interactive TUI using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model that turns keys into game events
//   - [Session]: runs a [sim.Loop] and a Bubble Tea program side by side
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Renderer]: maps the game's pixel world onto a canvas
//
// # Key Bindings
//
//	Space       - Cut the rope below the climber / play again
//	Up, k, w    - Climb (hold)
//	Down, j, s  - Stop climbing
//	- +         - Gravity -0.1 / +0.1
//	[ ]         - Gravity -1 / +1
//	T           - Cycle color themes
//	G           - Toggle the angle graph
//	Q           - Quit
//
// Terminals never report key releases, so holding the climb key arrives as
// key repeats. Each repeat keeps the climb going for a short hold window.
package viz
