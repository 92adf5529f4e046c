package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theoremus-urban-solutions/aseag-nextbus/aseag"
)

// fileFetcher serves a saved areainformation response instead of calling the
// API. This is CLI-specific and lets oneshot run offline.
type fileFetcher struct {
	path string
}

func newFileFetcher(path string) *fileFetcher {
	return &fileFetcher{path: path}
}

// Fetch ignores stopID; the file is the response for whatever stop it was
// saved from.
func (f *fileFetcher) Fetch(_ context.Context, stopID string) ([]aseag.RawPrediction, error) {
	body, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		return nil, &aseag.FetchError{Kind: aseag.KindTransport, StopID: stopID, Err: fmt.Errorf("read %s: %w", f.path, err)}
	}
	predictions, _, err := aseag.ParseAreaInformation(body)
	if err != nil {
		return nil, &aseag.FetchError{Kind: aseag.KindMalformedPayload, StopID: stopID, Err: err}
	}
	return predictions, nil
}
