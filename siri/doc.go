// Package siri defines SIRI (Service Interface for Real-time Information) data types.
//
// SIRI is a European standard (CEN/TS 15531) for real-time public transport information.
// This package contains the Stop Monitoring (SM) subset needed to publish the
// upcoming departures of a single stop: a StopMonitoringDelivery holding one
// MonitoredStopVisit per departure.
//
// All types include JSON struct tags; XML is written by the formatter package.
package siri
