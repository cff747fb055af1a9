package airtable

import (
	"sync"

	"github.com/tablekit/airtable/source/gojson"
)

// Driver converts raw JSON into decoded values via a pluggable SPI. The
// default implementation is backed by goccy/go-json and may be swapped with
// SetJSONDriver. Drivers must preserve numbers as json.Number.
type Driver interface {
	Decode(data []byte, v any) error
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver Driver = gojson.New()
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d Driver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the goccy/go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = gojson.New()
	jsonDriverMu.Unlock()
}

func getJSONDriver() Driver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// DecodeValue decodes arbitrary JSON into maps, slices, strings, bools and
// json.Number values, ready for shape checking.
func DecodeValue(data []byte) (any, error) {
	var v any
	if err := getJSONDriver().Decode(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeRecord decodes JSON that must be an object, failing with a
// type_mismatch when the payload decodes to anything else.
func DecodeRecord(data []byte) (map[string]any, error) {
	v, err := DecodeValue(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, typeMismatch("object", v)
	}
	return m, nil
}
