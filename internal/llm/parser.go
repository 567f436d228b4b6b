package llm

import (
	"strings"

	"github.com/sevigo/code-reviewer/internal/core"
)

// Section markers. Every review prompt template must use exactly these labels.
const (
	IssuesMarker      = "Issues:"
	SuggestionsMarker = "Suggestions:"
	FixedCodeMarker   = "Fixed Code:"
)

// Placeholders used when a section is missing or the model approved the code.
const (
	NoIssuesPlaceholder      = "No issues found."
	NoSuggestionsPlaceholder = "No suggestions provided."
	NoFixedCodePlaceholder   = "No fixed code provided."
	CodeConfirmedMessage     = "The code is correct. No changes needed."
)

const approvalPhrase = "looks good"

// section describes how one segment is cut out of the raw response.
type section struct {
	marker      string
	terminators []string
	placeholder string
}

var reviewSections = []section{
	{marker: IssuesMarker, terminators: []string{SuggestionsMarker, IssuesMarker}, placeholder: NoIssuesPlaceholder},
	{marker: SuggestionsMarker, terminators: []string{FixedCodeMarker, SuggestionsMarker}, placeholder: NoSuggestionsPlaceholder},
	{marker: FixedCodeMarker, terminators: []string{FixedCodeMarker}, placeholder: NoFixedCodePlaceholder},
}

// ParseReview splits a free-text model reply into issues, suggestions and
// fixed code.
//
// Each marker is located by its first occurrence. A segment runs from the end
// of its marker to the first terminator found after that offset, or to the end
// of the text. A marker word appearing inside prose therefore cuts a segment
// short; the reply format is requested by the prompt but never verified.
//
// If the reply mentions "looks good" anywhere (case-insensitive), the parsed
// segments are discarded and the approval triple is returned instead.
func ParseReview(raw string) core.ParsedReview {
	if strings.Contains(strings.ToLower(raw), approvalPhrase) {
		return core.ParsedReview{
			Issues:      NoIssuesPlaceholder,
			Suggestions: CodeConfirmedMessage,
			FixedCode:   NoFixedCodePlaceholder,
		}
	}

	segments := make([]string, len(reviewSections))
	for i, s := range reviewSections {
		segments[i] = s.extract(raw)
	}

	return core.ParsedReview{
		Issues:      segments[0],
		Suggestions: segments[1],
		FixedCode:   segments[2],
	}
}

func (s section) extract(raw string) string {
	start := strings.Index(raw, s.marker)
	if start < 0 {
		return s.placeholder
	}
	start += len(s.marker)

	end := len(raw)
	for _, t := range s.terminators {
		if idx := strings.Index(raw[start:], t); idx >= 0 && start+idx < end {
			end = start + idx
		}
	}

	return strings.TrimSpace(raw[start:end])
}
