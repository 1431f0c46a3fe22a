package agent

import (
	"encoding/json"
	"strings"

	"github.com/sandevgo/helpbot/internal/core"
)

// sourceRecord accepts the two shapes the service emits for citations: a bare
// string, or an object with title/url fields.
type sourceRecord struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *sourceRecord) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		s.Title = raw
		s.URL = extractURL(raw)
		return nil
	}

	type plain sourceRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = sourceRecord(p)
	return nil
}

func (s sourceRecord) toCore() core.Source {
	title := s.Title
	if title == "" {
		title = s.URL
	}
	return core.Source{Title: title, URL: s.URL}
}

// extractURL pulls the first http(s) URL out of a free-text citation so the
// presentation layer can render it as a link.
func extractURL(s string) string {
	for _, prefix := range []string{"https://", "http://"} {
		idx := strings.Index(s, prefix)
		if idx < 0 {
			continue
		}
		rest := s[idx:]
		if end := strings.IndexAny(rest, " \t\n)"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimRight(rest, ".,;")
	}
	return ""
}
