package corpus

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Ref models a linked-data reference. On the wire it is either a bare IRI
// string ("plant/ginseng") or an object carrying an @id
// ({"@id": "plant/ginseng"}); decoding remembers which form was used so a
// round trip reproduces the original bytes. Shapes that are neither are
// preserved verbatim and reported as malformed, not rejected.
type Ref struct {
	ID     string
	object bool
	raw    json.RawMessage
}

// IRI returns a Ref that encodes as a bare string.
func IRI(id string) Ref {
	return Ref{ID: id}
}

// ObjectRef returns a Ref that encodes as an {"@id": ...} object.
// Cross-reference (sameAs) entries use this form.
func ObjectRef(id string) Ref {
	return Ref{ID: id, object: true}
}

// IsZero reports whether the Ref holds neither an ID nor preserved bytes.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.raw == nil
}

// Malformed reports whether the decoded value had an unrecognized shape.
func (r Ref) Malformed() bool {
	return r.ID == "" && r.raw != nil
}

// UnmarshalJSON decodes either reference form, keeping unrecognized
// shapes verbatim.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj struct {
			ID string `json:"@id"`
		}
		if err := json.Unmarshal(trimmed, &obj); err == nil && obj.ID != "" {
			r.ID = obj.ID
			r.object = true
			return nil
		}
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			r.ID = s
			return nil
		}
	}
	r.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// MarshalJSON re-encodes the reference in its original form.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	if r.object {
		return json.Marshal(struct {
			ID string `json:"@id"`
		}{r.ID})
	}
	return json.Marshal(r.ID)
}

// NormalizeURL reduces a URL to a comparison key for cross-reference
// deduplication: scheme stripped, host lowercased, trailing slash removed.
func NormalizeURL(u string) string {
	s := strings.TrimSpace(u)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")
	if i := strings.IndexByte(s, '/'); i > 0 {
		s = strings.ToLower(s[:i]) + s[i:]
	} else {
		s = strings.ToLower(s)
	}
	return s
}
