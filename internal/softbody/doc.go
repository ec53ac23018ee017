// Package softbody provides a deformable-body simulator for squishy toys.
//
// A body is a fixed set of point masses ([Particle]) joined by distance
// constraints ([Link]). Each frame the [World] runs its components in a fixed
// order:
//
//   - [Integrate]: semi-implicit Verlet step inferring velocity from the
//     position history
//   - [Solve]: Gauss–Seidel projection of links toward their rest length,
//     with the bounds projected after every pass
//   - [MaintainShape]: pressure from the shoelace area plus shape-matching
//     recovery toward the rest configuration
//   - [ResolveBounds] and [ResolveBodies]: static half-planes and inter-body
//     particle overlap, followed by [ProjectBounds] so separation never
//     leaves a particle outside the bounds
//   - [Plasticize]: drift of the rest configuration toward the current one
//
// Pointer input reaches the world through the interaction methods
// ([World.Pin], [World.ApplyRadialForce], [World.SetPosition], [World.Pinch],
// [World.Release]) or through a [Pointer] that maps down/move/up events onto
// them.
//
// # Example
//
//	w := softbody.NewWorld(softbody.Box(0, 0, 400, 300)...)
//	cfg := softbody.RingConfig(softbody.V(200, 100), 60, 16)
//	jelly, _ := w.AddBody(cfg, softbody.DefaultMaterial())
//	w.Run(120)
//	outline := jelly.Outline()
//
// # Thread Safety
//
// A World is NOT thread-safe. A step always runs to completion, so callers
// that deliver input and frame ticks on one goroutine never observe a
// partially integrated state. Independent worlds may run in parallel.
package softbody
