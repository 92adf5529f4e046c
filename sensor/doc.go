// Package sensor wires the ASEAG client and the prediction pipeline into a
// pollable sensor.
//
// A Sensor owns one (stop, track, mode) triple. Each call to Update is one
// update cycle: fetch, normalize, select, store. The last successful
// DisplayState stays visible until the next successful cycle replaces it, so
// a failed fetch never blanks the sensor.
//
// # Thread Safety
//
// Update calls on one sensor are serialized. Readers (State, Attributes,
// Snapshot) may run concurrently with Update.
package sensor
