// Package gojson provides the default JSON decode driver, backed by
// github.com/goccy/go-json.
package gojson

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"
)

// Driver decodes JSON with numbers preserved as json.Number so the
// integer/float distinction survives into shape checking.
type Driver struct{}

// New returns the goccy-backed driver.
func New() Driver { return Driver{} }

// Name identifies the driver.
func (Driver) Name() string { return "goccy/go-json" }

// Decode unmarshals data into v with UseNumber semantics.
func (Driver) Decode(data []byte, v any) error {
	return decodeFrom(bytes.NewReader(data), v)
}

// DecodeReader unmarshals from r into v with UseNumber semantics.
func (Driver) DecodeReader(r io.Reader, v any) error {
	return decodeFrom(r, v)
}

func decodeFrom(r io.Reader, v any) error {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}
