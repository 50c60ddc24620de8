package physics

import (
	"math"
)

// Damping is the factor applied to angular velocity after every tick.
const Damping = 0.99

// Body is one pendulum segment of the chain.
type Body struct {
	Length              float64
	Angle               float64 // Displacement from vertical, radians
	AngularVelocity     float64
	AngularAcceleration float64
	VerticalVelocity    float64 // Only used once cut
	AnchorX, AnchorY    float64
	BobX, BobY          float64
	Mass                float64
	Cut                 bool
}

// NewBody creates a body at rest hanging from the given anchor.
func NewBody(length, angle, anchorX, anchorY, mass float64) *Body {
	b := &Body{
		Length:  length,
		Angle:   angle,
		AnchorX: anchorX,
		AnchorY: anchorY,
		Mass:    mass,
	}
	b.UpdateBobPosition()
	return b
}

// UpdateBobPosition derives the bob from anchor, length and angle.
func (b *Body) UpdateBobPosition() {
	b.BobX = b.AnchorX + b.Length*math.Sin(b.Angle)
	b.BobY = b.AnchorY + b.Length*math.Cos(b.Angle)
}

// Update advances the body by one tick.
func (b *Body) Update(gravity float64) {
	if !b.Cut {
		b.AngularAcceleration = (-gravity / b.Length) * math.Sin(b.Angle)
		b.AngularVelocity += b.AngularAcceleration
		b.Angle += b.AngularVelocity
		b.AngularVelocity *= Damping
		b.UpdateBobPosition()
		return
	}

	// Free fall. The stale angular velocity doubles as a sideways drift.
	b.VerticalVelocity += gravity
	b.AnchorY += b.VerticalVelocity
	b.AnchorX += b.Length * math.Sin(b.AngularVelocity)
	b.UpdateBobPosition()
}

// Energy returns the mechanical energy of the swinging body in per-tick units.
// A cut body contributes nothing.
func (b *Body) Energy(gravity float64) float64 {
	if b.Cut {
		return 0
	}
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := b.Length * b.AngularVelocity
	ke := 0.5 * b.Mass * v * v
	pe := b.Mass * gravity * b.Length * (1.0 - math.Cos(b.Angle))
	return ke + pe
}

// Valid reports whether every numeric field is finite.
func (b *Body) Valid() bool {
	for _, v := range [...]float64{
		b.Length, b.Angle, b.AngularVelocity, b.AngularAcceleration,
		b.VerticalVelocity, b.AnchorX, b.AnchorY, b.BobX, b.BobY, b.Mass,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
