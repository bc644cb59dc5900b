package http

import (
	"regexp"
	"strings"
)

// Compile once and reuse (thread-safe). Greedy match from the first
// opening fence to the LAST closing fence, so nested code blocks inside
// JSON string values do not truncate the extraction.
var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*([\\s\\S]*)```")

// ExtractJSONFromMarkdown extracts JSON from markdown code fences.
//
// Models asked for "ONLY valid JSON" still frequently wrap the object in
// ```json fences. Supports both ```json and bare ``` blocks. If no fence
// is found the trimmed original text is returned, since it may already be
// raw JSON.
//
// Assumption: the model returns a single JSON block. Multiple separate
// blocks would be merged by the greedy match and likely fail to decode,
// which the caller treats as a parse failure.
func ExtractJSONFromMarkdown(text string) string {
	matches := jsonBlockRegex.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return strings.TrimSpace(text)
}
