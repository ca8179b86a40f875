package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers and conversational preamble
// from JSON responses.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") &&
				!strings.ContainsAny(firstLine, "{[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Drop preamble such as "Here is the JSON:" before the first object or array
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		if idx := strings.IndexAny(text, "{["); idx > 0 {
			text = text[idx:]
		}
	}

	return text
}

// ExtractJSONArray returns the first balanced JSON array at the start of text,
// ignoring brackets inside strings. Returns "" when text does not start with '['.
func ExtractJSONArray(text string) string {
	return extractBalanced(strings.TrimSpace(text), '[', ']')
}

// ExtractJSONObject is ExtractJSONArray for objects.
func ExtractJSONObject(text string) string {
	return extractBalanced(strings.TrimSpace(text), '{', '}')
}

func extractBalanced(text string, open, close byte) string {
	if text == "" || text[0] != open {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
