package services

import (
	"encoding/json"
	"sort"
	"strings"
)

// ParsedBundle is the result of parsing a generation reply. Fallback marks a
// reply that did not contain a usable JSON object and was degraded to a
// single implicit index.html.
type ParsedBundle struct {
	Files       map[string]string
	PreviewHTML string
	Fallback    bool
}

// Paths returns the file paths in sorted order. Streaming uses this so the
// event order is deterministic per invocation.
func (b *ParsedBundle) Paths() []string {
	paths := make([]string, 0, len(b.Files))
	for p := range b.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ParseGenerationReply extracts the {files, preview_html} object from a raw
// model reply by scanning between the first '{' and the last '}'. Replies
// without a usable object degrade to the whole text as index.html and as the
// preview document, so the caller always has a non-empty result to persist
// and stream. Never fails.
func ParseGenerationReply(raw string) *ParsedBundle {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start != -1 && end > start {
		var payload struct {
			Files       map[string]string `json:"files"`
			PreviewHTML string            `json:"preview_html"`
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err == nil && len(payload.Files) > 0 {
			return &ParsedBundle{
				Files:       payload.Files,
				PreviewHTML: payload.PreviewHTML,
			}
		}
	}

	return &ParsedBundle{
		Files:       map[string]string{"index.html": raw},
		PreviewHTML: raw,
		Fallback:    true,
	}
}
