package game_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/physics"
)

// climbUntilWon holds the climb trigger until the game is won or the tick
// budget runs out, returning the number of ticks taken.
func climbUntilWon(g *game.Game, budget int) int {
	g.StartClimb()
	for i := 1; i <= budget; i++ {
		if !g.Tick() {
			return i
		}
	}
	return -1
}

var _ = Describe("Game", func() {
	var g *game.Game

	BeforeEach(func() {
		g = game.New(game.WithViewport(800, 900))
	})

	Describe("a fresh game", func() {
		It("hangs four bodies from the centre of the surface", func() {
			x, y := g.Origin()
			Expect(x).To(Equal(400.0))
			Expect(y).To(Equal(game.OriginY))
			Expect(g.Bodies()).To(HaveLen(physics.BodyCount))
			Expect(g.Bodies()).To(Equal(physics.NewChain(400, game.OriginY)))
		})

		It("starts idle with default gravity", func() {
			Expect(g.Status()).To(Equal(game.StatusIdle))
			Expect(g.Gravity()).To(Equal(game.DefaultGravity))
			Expect(g.TickCount()).To(BeZero())
		})
	})

	Describe("ticking", func() {
		It("keeps body 2 attached to body 1 until body 1 is cut", func() {
			bodies := g.Bodies()
			for i := 0; i < 300; i++ {
				Expect(g.Tick()).To(BeTrue())
				Expect(bodies[2].AnchorX).To(Equal(bodies[1].BobX))
				Expect(bodies[2].AnchorY).To(Equal(bodies[1].BobY))
			}
		})

		It("never wins without climbing", func() {
			for i := 0; i < 5000; i++ {
				Expect(g.Tick()).To(BeTrue())
			}
			Expect(g.Won()).To(BeFalse())
			Expect(g.Bodies()[0].BobY).To(BeNumerically(">", game.OriginY))
		})
	})

	Describe("cutting", func() {
		It("cuts every body below the climber", func() {
			g.PressCut()
			for i, b := range g.Bodies() {
				Expect(b.Cut).To(Equal(i > 0), "body %d", i)
			}
		})

		It("is idempotent", func() {
			g.PressCut()
			once := g.Bodies().Clone()
			g.PressCut()
			Expect(g.Bodies()).To(Equal(once))
		})

		It("lets the severed bodies fall", func() {
			g.PressCut()
			before := g.Bodies()[3].BobY
			for i := 0; i < 10; i++ {
				g.Tick()
			}
			Expect(g.Bodies()[3].BobY).To(BeNumerically(">", before))
		})
	})

	Describe("climbing", func() {
		It("shortens the climber by power over the hanging weight", func() {
			g.StartClimb()
			Expect(g.Status()).To(Equal(game.StatusClimbing))

			g.Tick()
			speed := game.ClimbPower / (4 * game.DefaultGravity)
			Expect(g.Bodies()[0].Length).To(BeNumerically("~", 200-speed, 1e-9))
		})

		It("climbs faster once the load is cut", func() {
			g.PressCut()
			g.StartClimb()

			g.Tick()
			speed := game.ClimbPower / (1 * game.DefaultGravity)
			Expect(g.Bodies()[0].Length).To(BeNumerically("~", 200-speed, 1e-9))
		})

		It("resumes normal swinging when released", func() {
			g.StartClimb()
			g.Tick()
			g.StopClimb()
			length := g.Bodies()[0].Length

			g.Tick()
			Expect(g.Status()).To(Equal(game.StatusIdle))
			Expect(g.Bodies()[0].Length).To(Equal(length))
		})

		It("wins once the climber reaches the origin", func() {
			ticks := climbUntilWon(g, 10000)
			Expect(ticks).To(BeNumerically(">", 0))
			Expect(g.Won()).To(BeTrue())
			Expect(g.Status()).To(Equal(game.StatusWon))
			Expect(g.Bodies()[0].BobY).To(BeNumerically("<=", game.OriginY))
		})

		It("halts all physics after the win", func() {
			climbUntilWon(g, 10000)
			frozen := g.Snapshot()

			for i := 0; i < 10; i++ {
				Expect(g.Tick()).To(BeFalse())
			}
			Expect(g.Snapshot()).To(Equal(frozen))
		})
	})

	Describe("restarting", func() {
		It("resets to exactly the starting chain", func() {
			g.PressCut()
			climbUntilWon(g, 10000)
			Expect(g.Won()).To(BeTrue())

			g.PressCut()
			Expect(g.Won()).To(BeFalse())
			Expect(g.Bodies()).To(Equal(physics.NewChain(400, game.OriginY)))
		})

		It("uses the origin of the current surface", func() {
			g.Resize(1200, 900)
			climbUntilWon(g, 10000)
			g.PressCut()
			Expect(g.Bodies()).To(Equal(physics.NewChain(600, game.OriginY)))
		})
	})

	Describe("gravity slider", func() {
		DescribeTable("clamps to its range",
			func(in, want float64) {
				g.SetGravity(in)
				Expect(g.Gravity()).To(Equal(want))
			},
			Entry("above max", 25.0, game.GravityMax),
			Entry("below min", -3.0, game.GravityMin),
			Entry("in range", 3.7, 3.7),
			Entry("between steps", 7.3214, 7.3),
			Entry("rounds up to the next step", 7.36, 7.4),
		)

		It("keeps an off-step starting value until the slider moves", func() {
			g = game.New(game.WithGravity(9.81))
			Expect(g.Gravity()).To(Equal(9.81))
			g.SetGravity(g.Gravity())
			Expect(g.Gravity()).To(Equal(9.8))
		})

		It("ignores NaN", func() {
			g.SetGravity(math.NaN())
			Expect(g.Gravity()).To(Equal(game.DefaultGravity))
		})

		It("snaps nudges to the slider step", func() {
			g.NudgeGravity(game.GravityStep)
			Expect(g.Gravity()).To(Equal(9.9))
			g.NudgeGravity(-1)
			Expect(g.Gravity()).To(Equal(8.9))
		})
	})

	Describe("resizing", func() {
		It("re-centres the origin and re-anchors the chain", func() {
			for i := 0; i < 20; i++ {
				g.Tick()
			}
			g.Resize(1400, 900)

			x, _ := g.Origin()
			Expect(x).To(Equal(700.0))
			bodies := g.Bodies()
			Expect(bodies[0].AnchorX).To(Equal(700.0))
			for i := 1; i < len(bodies); i++ {
				Expect(bodies[i].AnchorX).To(Equal(bodies[i-1].BobX))
			}
		})
	})

	Describe("events", func() {
		It("routes every event to its handler", func() {
			g.Apply(game.ClimbStart{})
			Expect(g.Climbing()).To(BeTrue())
			g.Apply(game.ClimbStop{})
			Expect(g.Climbing()).To(BeFalse())

			g.Apply(game.GravitySet{Value: 1.6})
			Expect(g.Gravity()).To(Equal(1.6))
			g.Apply(game.GravityNudge{Delta: 1})
			Expect(g.Gravity()).To(Equal(2.6))

			g.Apply(game.Resized{Width: 600, Height: 900})
			x, _ := g.Origin()
			Expect(x).To(Equal(300.0))

			g.Apply(game.CutPressed{})
			Expect(g.Bodies().CutCount()).To(Equal(physics.BodyCount - 1))

			g.Apply(nil)
		})
	})

	Describe("snapshots", func() {
		It("do not change when the game moves on", func() {
			frame := g.Snapshot()
			g.Tick()
			Expect(frame.Tick).To(BeZero())
			Expect(frame.Bodies[0].Angle).To(Equal(math.Pi / 4))
			Expect(frame.Won()).To(BeFalse())

			climber, ok := frame.Climber()
			Expect(ok).To(BeTrue())
			Expect(climber.Length).To(Equal(200.0))
		})
	})
})
