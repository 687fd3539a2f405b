package intake

// decode.go is the single normalization boundary between the two accepted
// request encodings and the validator. Both decoders produce the same
// Submission shape, so nothing downstream ever branches on how the body
// arrived.

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

// Submission is the canonical untyped input record. Values are whatever the
// source decoder produced: strings from forms; strings, numbers and booleans
// from JSON.
type Submission map[string]any

// DecodeJSON reads a JSON object body into a Submission.
func DecodeJSON(r io.Reader) (Submission, error) {
	var s Submission
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode json body: %w", err)
	}
	if s == nil {
		s = Submission{}
	}
	return s, nil
}

// DecodeForm converts parsed urlencoded form values into a Submission.
// Repeated keys keep their first value, matching how the form was read
// before.
func DecodeForm(values url.Values) Submission {
	s := make(Submission, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			s[k] = vs[0]
		}
	}
	return s
}

// IsSpam reports whether the honeypot field was filled in. The "website"
// input is hidden on the form, so any non-empty value marks an automated
// submission. Callers must short-circuit before validation and answer with a
// fabricated success, persisting nothing.
func (s Submission) IsSpam() bool {
	switch t := s["website"].(type) {
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}
