package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// Front matter is a JSON object followed by a separator line, then the
// raw content body. The newline after the separator belongs to the
// separator, not the content.
const frontMatterSep = "---"

var frontMatterSepRe = regexp.MustCompile(`(?m)^---\n`)

// Document is one content file split into raw front matter and body.
// It preserves every metadata key verbatim, so commands that rewrite
// files (normalize, public, touch) never lose fields they don't
// understand.
type Document struct {
	Meta    map[string]json.RawMessage
	Content string
}

// ParseDocument splits a content file into front matter and body.
func ParseDocument(data []byte) (*Document, error) {
	loc := frontMatterSepRe.FindIndex(data)
	if loc == nil {
		return nil, fmt.Errorf("no front-matter separator %q found", frontMatterSep)
	}
	meta := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data[:loc[0]], &meta); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	return &Document{Meta: meta, Content: string(data[loc[1]:])}, nil
}

// Encode recomposes the document with canonical front matter: sorted
// keys, four-space indent, literal (non-HTML-escaped) Unicode. Canonical
// form keeps automated rewrites from producing spurious diffs.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(d.Meta); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString(frontMatterSep)
	buf.WriteByte('\n')
	buf.WriteString(d.Content)
	return buf.Bytes(), nil
}

// GetString returns the value of a string-typed metadata key.
func (d *Document) GetString(key string) (string, bool) {
	raw, ok := d.Meta[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// GetBool returns the value of a bool-typed metadata key, false when
// absent or not a bool.
func (d *Document) GetBool(key string) bool {
	raw, ok := d.Meta[key]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

// Set marshals a metadata value in place. Values are plain JSON types;
// marshaling them cannot fail.
func (d *Document) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	d.Meta[key] = raw
}

// Delete removes a metadata key if present.
func (d *Document) Delete(key string) {
	delete(d.Meta, key)
}

// Timestamp layouts accepted in front matter. Files written by this
// tool always use RFC 3339 with seconds; the fallbacks cover hand-edited
// and imported files without a zone offset, which are read in local
// time.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatTimestamp renders t the way front matter stores timestamps:
// RFC 3339 with seconds precision.
func FormatTimestamp(t time.Time) string {
	return t.Truncate(time.Second).Format(time.RFC3339)
}
