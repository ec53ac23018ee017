package softbody

// Integrate advances every movable particle one frame:
//
//	v    = (pos - prev) * damping
//	prev = pos
//	pos  = pos + v + (acc + gravity) * AccelScale
//
// and clears the accumulator. Pinned and held particles skip both the update
// and the reset; AddForce already discards forces aimed at them.
func Integrate(b *Body, m Material) {
	for i := range b.Particles {
		p := &b.Particles[i]
		if !p.Movable() {
			continue
		}
		v := p.Pos.Sub(p.Prev).Mult(m.Damping)
		acc := p.Acc.Add(m.Gravity)
		p.carried = v
		p.Prev = p.Pos
		p.Pos = p.Pos.Add(v).Add(acc.Mult(AccelScale))
		p.Acc = Vec{}
	}
}
