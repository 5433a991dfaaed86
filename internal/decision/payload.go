package decision

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON pulls a JSON object out of raw model output. Models often
// wrap the object in a markdown code fence or surround it with prose, so
// everything outside the outermost braces is discarded.
func extractJSON(content string) (map[string]any, error) {
	trimmed := strings.TrimSpace(content)

	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			trimmed = trimmed[start : end+1]
		}
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, fmt.Errorf("no JSON object in model output: %w", err)
	}
	return doc, nil
}
