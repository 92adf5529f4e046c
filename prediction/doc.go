// Package prediction turns raw broker predictions into what a sensor displays.
//
// Select runs the whole pipeline:
//
//  1. Normalize: epoch milliseconds become UTC instants truncated to whole
//     seconds, and the delay is actual minus planned time in whole minutes.
//  2. FilterTrack: keep predictions for one track (exact match).
//  3. SortByDeparture: ascending, stable.
//  4. Pick a DisplayState for the configured Mode.
//
// Everything in this package is pure. Nothing reads the wall clock, so the
// same input always produces the same DisplayState.
package prediction
