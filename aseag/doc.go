// Package aseag fetches departure predictions from the ASEAG mobility broker.
//
// The broker exposes one endpoint per stop area:
//
//	GET https://mova.aseag.de/mbroker/rest/areainformation/{stopID}
//
// which answers with a JSON envelope of the form
//
//	{"departures": {"departures": [{"stopPrediction": {...}}, ...]}}
//
// Client unwraps that envelope into RawPrediction values. Parsing is lenient:
// anything structurally unexpected inside valid JSON is dropped instead of
// failing the request. Only transport failures and bodies that are not JSON at
// all are reported, as *FetchError.
package aseag
