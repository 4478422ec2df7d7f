package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readBodyJSON decodes the request body into a generic value with
// json.Number for numeric literals, so validators can tell integers
// from floats. Returns nil for an empty or unparseable body; the
// validators reject nil as a non-dictionary input.
func readBodyJSON(r *http.Request, maxBytes int64) any {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil || len(body) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil
	}
	return out
}
