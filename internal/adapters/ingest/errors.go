package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	ErrMissingFile  = errors.New("dataset file not found")
	ErrMalformedRow = errors.New("malformed row")
)
