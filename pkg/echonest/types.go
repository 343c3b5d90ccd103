package echonest

import (
	"encoding/json"
	"fmt"
)

// Envelope represents the root JSON document returned by the EchoNest API.
//
//	{"response": {"status": {"code": 0, "message": "Success"}, "genres": [...]}}
type Envelope struct {
	Response Response `json:"response"`
}

// Response is the body of an Envelope: a status block plus the named
// result fields of the endpoint that was called.
type Response struct {
	Status Status
	Fields map[string]json.RawMessage // Result fields keyed by name, excluding "status"
}

// Status reports whether the API accepted the request.
type Status struct {
	Code    int    `json:"code"`    // 0 on success
	Message string `json:"message"` // Human readable status from EchoNest
	Version string `json:"version"` // API version, when reported
}

// Record is a single result record. Its schema is defined by the
// remote API, not this client.
type Record map[string]any

// Bucket selects an optional data facet to include with each result.
type Bucket string

// Buckets accepted by the genre endpoints.
const (
	BucketDescription Bucket = "description"
	BucketURLs        Bucket = "urls"
)

// UnmarshalJSON splits the response object into its status block and
// result fields.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	statusRaw, ok := raw["status"]
	if !ok {
		return fmt.Errorf("response has no status block")
	}
	if err := json.Unmarshal(statusRaw, &r.Status); err != nil {
		return fmt.Errorf("failed to parse status block: %w", err)
	}
	delete(raw, "status")

	r.Fields = raw
	return nil
}

// MarshalJSON writes the status block and result fields back into a
// single object.
func (r Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["status"] = r.Status
	return json.Marshal(out)
}

// String returns the string value stored under key, or "" if the value
// is missing or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}
