// Package viz draws soft-body worlds in the terminal.
//
//   - [Canvas]: Braille dot canvas, two by four dots per character
//   - [View]: maps arena coordinates onto canvas dots and back
//   - [BodyStyle]: per-toy drawing, looked up by the body's style tag
//   - [Model]: the live viewer, a Bubble Tea program that steps a world
//     every tick and turns the mouse into a poke, drag, pinch or pin
//   - [Picker]: toy menu that opens the live viewer
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the toy
//	1-4   - Pointer tool
//	Tab   - Next slider, Up/Down to move it
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
