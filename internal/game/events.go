package game

// Event is an input delivered to a Game.
type Event interface {
	apply(g *Game)
}

// CutPressed is the cut/restart trigger.
type CutPressed struct{}

// ClimbStart is the climb trigger going down.
type ClimbStart struct{}

// ClimbStop is the climb trigger coming up.
type ClimbStop struct{}

// GravitySet moves the gravity slider to Value.
type GravitySet struct{ Value float64 }

// GravityNudge moves the gravity slider by Delta.
type GravityNudge struct{ Delta float64 }

// Resized reports a new drawing surface size in world units.
type Resized struct{ Width, Height float64 }

func (CutPressed) apply(g *Game)     { g.PressCut() }
func (ClimbStart) apply(g *Game)     { g.StartClimb() }
func (ClimbStop) apply(g *Game)      { g.StopClimb() }
func (e GravitySet) apply(g *Game)   { g.SetGravity(e.Value) }
func (e GravityNudge) apply(g *Game) { g.NudgeGravity(e.Delta) }
func (e Resized) apply(g *Game)      { g.Resize(e.Width, e.Height) }

// Apply handles one input event.
func (g *Game) Apply(ev Event) {
	if ev == nil {
		return
	}
	ev.apply(g)
}
