package corpus

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openherb/herbarium/pkg/constants"
	"github.com/openherb/herbarium/pkg/errors"
)

// Marshal serializes a document in the corpus wire format: two-space
// indent, no HTML escaping, trailing newline.
func Marshal(doc Document) ([]byte, error) {
	return MarshalIndented(doc)
}

// MarshalIndented serializes any value in the corpus wire format. Index
// artifacts and persisted reports use the same conventions as documents.
func MarshalIndented(v any) ([]byte, error) {
	compact, err := marshalValue(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", constants.JSONIndent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Write atomically replaces the file at path with data: the bytes land
// in a temp file in the same directory, then rename over the target.
// An interrupted batch leaves either the old or the new content, never
// a torn file.
func Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".herbarium-*.json")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// WriteDocument marshals and atomically writes a document.
func WriteDocument(path string, doc Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return errors.WrapResource("marshal", "document", doc.DocID(), err)
	}
	return Write(path, data)
}

// WriteJSON marshals and atomically writes any value in the corpus wire
// format. Used for index artifacts and persisted run reports.
func WriteJSON(path string, v any) error {
	data, err := MarshalIndented(v)
	if err != nil {
		return err
	}
	return Write(path, data)
}

// Save writes a loaded file back to its original location under the
// corpus root.
func (c *Corpus) Save(f *File) error {
	if f.Doc == nil {
		return errors.WrapResource("save", "document", f.Path, errors.New("no parsed document"))
	}
	return WriteDocument(filepath.Join(c.Root, f.Path), f.Doc)
}
