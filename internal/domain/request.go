package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request field names as they appear on the wire.
const (
	FieldLat     = "lat"
	FieldLon     = "lon"
	FieldAvgTemp = "avg_temp"
)

// InputReason classifies why a request value was rejected.
type InputReason string

const (
	ReasonMissing       InputReason = "missing"
	ReasonNonNumeric    InputReason = "non_numeric"
	ReasonNonFinite     InputReason = "non_finite"
	ReasonMalformedBody InputReason = "malformed_body"
)

// InputError reports a request that cannot be scored. Field is empty when
// the body as a whole is unusable.
type InputError struct {
	Field  string
	Reason InputReason
	Value  string
	Err    error
}

func (e *InputError) Error() string {
	switch e.Reason {
	case ReasonMissing:
		return fmt.Sprintf("field %q is required", e.Field)
	case ReasonNonNumeric:
		return fmt.Sprintf("field %q: value %s is not a number", e.Field, e.Value)
	case ReasonNonFinite:
		return fmt.Sprintf("field %q: value %s is not finite", e.Field, e.Value)
	default:
		if e.Err != nil {
			return "request body must be a JSON object: " + e.Err.Error()
		}
		return "request body must be a JSON object"
	}
}

func (e *InputError) Unwrap() error { return e.Err }

// PredictionRequest is a validated set of model inputs.
type PredictionRequest struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	AvgTemp float64 `json:"avg_temp"`
}

// PredictionResponse is the success payload of the prediction endpoint.
type PredictionResponse struct {
	UHI    float64  `json:"uhi"`
	Label  Label    `json:"label"`
	Advice []string `json:"advice"`
}

// ErrorResponse is the failure payload of the prediction endpoint.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// ParsePredictionRequest decodes a JSON body into a PredictionRequest.
// Fields are checked in the order lat, lon, avg_temp and the first failure
// is returned as an *InputError.
func ParsePredictionRequest(body []byte) (PredictionRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return PredictionRequest{}, &InputError{Reason: ReasonMalformedBody, Err: err}
	}
	if fields == nil {
		return PredictionRequest{}, &InputError{Reason: ReasonMalformedBody}
	}

	var req PredictionRequest
	targets := []struct {
		name string
		dst  *float64
	}{
		{FieldLat, &req.Lat},
		{FieldLon, &req.Lon},
		{FieldAvgTemp, &req.AvgTemp},
	}
	for _, t := range targets {
		v, err := parseNumber(t.name, fields[t.name])
		if err != nil {
			return PredictionRequest{}, err
		}
		*t.dst = v
	}
	return req, nil
}

// parseNumber coerces a raw JSON value to a finite float64. JSON numbers and
// strings holding a decimal number are accepted.
func parseNumber(field string, raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, &InputError{Field: field, Reason: ReasonMissing}
	}

	var text string
	switch c := raw[0]; {
	case c == '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, &InputError{Field: field, Reason: ReasonNonNumeric, Value: string(raw), Err: err}
		}
		text = strings.TrimSpace(text)
		if isHexFloat(text) {
			return 0, &InputError{Field: field, Reason: ReasonNonNumeric, Value: string(raw)}
		}
	case c == '-' || (c >= '0' && c <= '9'):
		text = string(raw)
	default:
		return 0, &InputError{Field: field, Reason: ReasonNonNumeric, Value: string(raw)}
	}

	v, err := strconv.ParseFloat(text, 64)
	switch {
	case err == nil:
	case errors.Is(err, strconv.ErrRange) && !math.IsInf(v, 0):
		// underflow rounds toward zero
	case errors.Is(err, strconv.ErrRange):
		return 0, &InputError{Field: field, Reason: ReasonNonFinite, Value: string(raw), Err: err}
	default:
		return 0, &InputError{Field: field, Reason: ReasonNonNumeric, Value: string(raw), Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputError{Field: field, Reason: ReasonNonFinite, Value: string(raw)}
	}
	return v, nil
}

// isHexFloat reports whether s uses the 0x form strconv accepts but a
// decimal-only coercion does not.
func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}
