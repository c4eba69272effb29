package service

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// The gateway does not reliably set Content-Type and its field names drift
// between deliveries, so decoding is attempted as JSON first, then as
// form-urlencoded, and each logical field is extracted from a prioritized
// list of candidate keys.

var emailKeys = []string{"email", "buyerEmail", "customer_email", "customerEmail"}

var statusKeys = []string{"status", "transaction_status", "payment_status", "status_code"}

// decodePayload turns a raw webhook body into a flat string map. Bodies that
// are neither JSON nor urlencoded decode to an empty map rather than failing.
func decodePayload(raw []byte) map[string]string {
	fields := make(map[string]string)

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err == nil {
		for k, v := range parsed {
			switch value := v.(type) {
			case string:
				fields[k] = value
			case float64:
				fields[k] = strconv.FormatFloat(value, 'f', -1, 64)
			case bool:
				fields[k] = strconv.FormatBool(value)
			}
		}
		return fields
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return fields
	}
	for k, vs := range values {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	return fields
}

// pick returns the first non-empty value among the candidate keys.
func pick(fields map[string]string, keys []string) string {
	for _, key := range keys {
		if v := fields[key]; v != "" {
			return v
		}
	}
	return ""
}
