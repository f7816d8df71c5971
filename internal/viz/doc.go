// Package viz draws an orrery in the terminal.
//
// Bodies are bound to an in-memory scene graph and rasterised onto a
// braille [Canvas] through a damped orbit [Camera]. The live view is a
// bubbletea program whose frame messages drive a scene.Loop, so the model
// advances by elapsed time rather than by frame count.
package viz
