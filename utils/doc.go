// Package utils provides internal utility functions for aseag-nextbus.
// This package is not intended to be imported by external code.
//
// It contains time formatting helpers shared by the prediction, sensor and
// formatter packages.
package utils
