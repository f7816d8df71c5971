// Package scene is the boundary between the orbital model and whatever
// draws it.
//
// A renderer provides [Node] values (transform nodes with parent/child
// attachment) and a [Scheduler] that fires once per display refresh. A
// [Binder] maps body IDs to nodes and pushes each tick's updates into them;
// [Loop] ties a Scheduler, an orbit.Clock and a Binder together.
//
// [Graph] is an in-memory Node implementation used for headless runs and
// tests.
package scene
