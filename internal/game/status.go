package game

// Status is the interaction phase of a game.
type Status int

const (
	StatusIdle     Status = iota // Hanging, nothing held
	StatusClimbing               // Climb trigger held
	StatusWon                    // Climber reached the origin, physics halted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusClimbing:
		return "climbing"
	case StatusWon:
		return "won"
	default:
		return "unknown"
	}
}
