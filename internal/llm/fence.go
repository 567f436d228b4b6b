package llm

import "strings"

// StripCodeFence removes a ``` fence that some models wrap around code. The
// optional language tag on the opening fence is dropped as well. Text without
// a leading fence is returned unchanged.
func StripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	idx := strings.Index(trimmed, "\n")
	if idx < 0 {
		return s
	}
	inner := trimmed[idx+1:]
	if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
		inner = inner[:lastFence]
	}
	return strings.TrimSpace(inner)
}
