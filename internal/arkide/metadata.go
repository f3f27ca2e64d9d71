package arkide

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProjectMetadata is the metadata document the ArkIDE API returns for a project.
// Only title and instructions are interpreted; every other field is kept in
// Extra and written back unchanged by MarshalJSON.
type ProjectMetadata struct {
	Title        string
	Instructions *string
	Extra        map[string]json.RawMessage

	hasTitle bool
}

// UnmarshalJSON requires a JSON object. Known fields with unexpected types are
// left in Extra rather than rejected.
func (m *ProjectMetadata) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("project metadata must be a JSON object")
	}

	*m = ProjectMetadata{Extra: fields}

	if raw, ok := fields["title"]; ok {
		var title string
		if !isNull(raw) && json.Unmarshal(raw, &title) == nil {
			m.Title = title
			m.hasTitle = true
			delete(fields, "title")
		}
	}
	if raw, ok := fields["instructions"]; ok {
		// A null stays in Extra so it is written back as sent.
		var instructions string
		if !isNull(raw) && json.Unmarshal(raw, &instructions) == nil {
			m.Instructions = &instructions
			delete(fields, "instructions")
		}
	}
	return nil
}

// MarshalJSON writes the typed fields back alongside Extra.
func (m ProjectMetadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+2)
	for k, v := range m.Extra {
		out[k] = v
	}
	if m.hasTitle || m.Title != "" {
		out["title"] = m.Title
	}
	if m.Instructions != nil {
		out["instructions"] = *m.Instructions
	}
	return json.Marshal(out)
}

// TitleText returns the title as page text. A number, boolean or null title
// is rendered from its JSON literal; objects, arrays and a missing title give "".
func (m *ProjectMetadata) TitleText() string {
	if m.hasTitle {
		return m.Title
	}
	raw, ok := m.Extra["title"]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Description returns the instructions, or fallback when they are missing or empty.
func (m *ProjectMetadata) Description(fallback string) string {
	if m.Instructions == nil || *m.Instructions == "" {
		return fallback
	}
	return *m.Instructions
}
