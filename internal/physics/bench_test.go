package physics

import "testing"

func BenchmarkBodyUpdate(b *testing.B) {
	body := NewBody(200, 0.78, 400, 50, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		body.Update(9.81)
	}
}

func BenchmarkChainStep(b *testing.B) {
	c := NewChain(400, 50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Step(9.81)
	}
}

func BenchmarkChainStepCut(b *testing.B) {
	c := NewChain(400, 50)
	c.CutBelow(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Step(9.81)
	}
}
