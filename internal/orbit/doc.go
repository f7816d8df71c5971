// Package orbit provides the orbital scene model: a registry of celestial
// bodies on circular orbits and the per-tick rule that advances them.
//
// The package is organised around a few types:
//
//   - [Body]: one sun, planet, moon or satellite and its orbital parameters
//   - [Registry]: insertion-ordered collection enforcing the parent tree
//   - [Scene]: explicit context owning a registry and producing [Update]s
//   - [Clock]: converts wall-clock frame intervals into fractional ticks
//
// # Example
//
//	sc := orbit.NewScene()
//	_ = sc.Register(orbit.Body{ID: "sun", SelfRotationSpeed: 0.002})
//	_ = sc.Register(orbit.Body{ID: "earth", ParentID: "sun", OrbitalRadius: 34, AngularSpeed: 0.01})
//	for _, u := range sc.Step(1) {
//		node(u.BodyID).SetPosition(u.Position)
//	}
//
// # Thread Safety
//
// A Scene has exactly one writer, the frame callback that calls Step.
// Renderers read the returned updates after Step returns, on the same
// goroutine. Scene is NOT safe for concurrent use.
package orbit
