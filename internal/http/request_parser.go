// Package http provides the JSON API server and its handlers.
//
// This file implements request body decoding and query parsing shared by
// the handlers.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"finvault/internal/core"
)

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

// decodeJSON reads one JSON document into dst. Amount fields are decoded by
// decimal.Decimal, which accepts both numbers and numeric strings.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errMalformedBody)
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", errMalformedBody)
	}
	return nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// financialYear reads the financialYear query parameter.
func financialYear(r *http.Request) string {
	return sanitizeInput(r.URL.Query().Get("financialYear"))
}

// optionalDecimal returns zero for an omitted amount.
func optionalDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// requiredDecimal reports a missing amount as core.ErrInvalidAmount.
func requiredDecimal(d *decimal.Decimal) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Decimal{}, core.ErrInvalidAmount
	}
	return *d, nil
}

// parseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp, keeping the date.
func parseDate(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && s[10] == 'T' {
		s = s[:10]
	}
	return core.ParseDate(s)
}
