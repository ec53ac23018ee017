package softbody

// Solve relaxes the links of b toward their rest lengths with Gauss–Seidel
// passes in insertion order, so later links see the corrections of earlier
// ones. A link whose length exceeds RestLength*MaxStretch tears and is
// skipped from then on. Coincident endpoints have no direction and are
// skipped for that pass. When planes are given every pass ends by projecting
// movable particles back inside them, so links and bounds relax together
// instead of fighting across frames. Returns the number of links torn.
func Solve(b *Body, iterations int, stiffness float64, planes ...Plane) int {
	torn := 0
	for it := 0; it < iterations; it++ {
		for i := range b.Links {
			l := &b.Links[i]
			if l.Broken() {
				continue
			}
			pa, pb := &b.Particles[l.A], &b.Particles[l.B]
			diff := pb.Pos.Sub(pa.Pos)
			d := diff.Length()
			if d == 0 {
				continue
			}
			if l.MaxStretch > 0 && d > l.RestLength*l.MaxStretch {
				l.State = LinkBroken
				torn++
				continue
			}

			ma, mb := pa.Movable(), pb.Movable()
			if !ma && !mb {
				continue
			}
			k := stiffness * l.weight()
			if k > 1 {
				k = 1
			}
			corr := diff.Mult((d - l.RestLength) / d * k)
			switch {
			case ma && mb:
				half := corr.Mult(0.5)
				pa.Pos = pa.Pos.Add(half)
				pb.Pos = pb.Pos.Sub(half)
			case ma:
				pa.Pos = pa.Pos.Add(corr)
			default:
				pb.Pos = pb.Pos.Sub(corr)
			}
		}
		ProjectBounds(b, planes)
	}
	return torn
}

// PruneBroken drops torn links, keeping the order of the rest.
func PruneBroken(b *Body) int {
	kept := b.Links[:0]
	for _, l := range b.Links {
		if !l.Broken() {
			kept = append(kept, l)
		}
	}
	pruned := len(b.Links) - len(kept)
	b.Links = kept
	return pruned
}
