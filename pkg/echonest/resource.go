package echonest

import (
	"encoding/json"
	"net/url"
	"sync"
)

// Resource is the request executor shared by every resource service.
//
// It owns an option mapping of per-instance defaults (for example a
// genre name) and performs GET requests through its Client. A Resource
// is safe for concurrent use.
type Resource struct {
	client *Client

	mu      sync.RWMutex
	options map[string]any
}

// NewResource creates a Resource with an empty option mapping.
func NewResource(c *Client) *Resource {
	return &Resource{
		client:  c,
		options: make(map[string]any),
	}
}

// SetOption stores value under key and returns the receiver for chaining.
// Any key is accepted.
func (r *Resource) SetOption(key string, value any) *Resource {
	r.mu.Lock()
	r.options[key] = value
	r.mu.Unlock()
	return r
}

// Option returns the value stored under key and whether it was set.
func (r *Resource) Option(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.options[key]
	return v, ok
}

// stringOption returns the option under key if it is a non-empty string.
func (r *Resource) stringOption(key string) (string, bool) {
	v, ok := r.Option(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// ReturnResponse extracts the named result field from env.
//
// Returns a *MalformedResponseError if the field is absent or is not a
// list of records.
func ReturnResponse(env *Envelope, field string) ([]Record, error) {
	if env == nil {
		return nil, &MalformedResponseError{Field: field}
	}
	raw, ok := env.Response.Fields[field]
	if !ok {
		return nil, &MalformedResponseError{Field: field}
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &MalformedResponseError{Field: field, Err: err}
	}
	if records == nil {
		// JSON null decodes to a nil slice; callers get an empty list.
		records = []Record{}
	}
	return records, nil
}

// mergeParams combines per-instance defaults with explicit parameters.
// A key present in explicit is never overridden by defaults. Neither
// input is modified.
func mergeParams(defaults, explicit url.Values) url.Values {
	merged := make(url.Values, len(defaults)+len(explicit))
	for k, v := range explicit {
		merged[k] = append([]string(nil), v...)
	}
	for k, v := range defaults {
		if _, ok := merged[k]; ok {
			continue
		}
		merged[k] = append([]string(nil), v...)
	}
	return merged
}
