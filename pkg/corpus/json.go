package corpus

import (
	"bytes"
	"encoding/json"
	"sort"
)

// objectWriter builds a JSON object with explicit key order. Document
// types use it so a load/save cycle of an untouched file is byte-stable:
// known fields in declared order, then content fields, then unknown
// fields sorted by key.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

// field appends a key/value pair, marshaling the value without HTML
// escaping. Corpus documents hold free text; &, < and > stay literal.
func (w *objectWriter) field(key string, v any) {
	if w.err != nil {
		return
	}
	data, err := marshalValue(v)
	if err != nil {
		w.err = err
		return
	}
	w.raw(key, data)
}

// raw appends a key with pre-encoded JSON bytes.
func (w *objectWriter) raw(key string, data json.RawMessage) {
	if w.err != nil || len(data) == 0 {
		return
	}
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	keyData, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return
	}
	w.buf.Write(keyData)
	w.buf.WriteByte(':')
	w.buf.Write(bytes.TrimSpace(data))
	w.n++
}

// extras appends the unknown-field bag in sorted key order.
func (w *objectWriter) extras(extra map[string]json.RawMessage) {
	if len(extra) == 0 {
		return
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.raw(k, extra[k])
	}
}

func (w *objectWriter) bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// marshalValue encodes v with HTML escaping disabled.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeLangMap attempts to decode raw as a language map. The second
// return is false when the shape is wrong (for example a bare string),
// in which case the caller keeps the raw bytes in the extras bag so the
// validator can flag the shape without losing the value.
func decodeLangMap(raw json.RawMessage) (LanguageMap, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var m LanguageMap
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, false
	}
	return m, true
}
