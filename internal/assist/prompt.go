package assist

import (
	"fmt"
	"strings"
)

// ExplainPrompt builds the explanation prompt for pattern. A non-blank
// custom instruction replaces the default wording and is followed by the
// pattern.
func ExplainPrompt(pattern, custom string) string {
	if strings.TrimSpace(custom) == "" {
		return fmt.Sprintf("Explain in detail what this regular expression does: %s. "+
			"Give examples of texts that match and texts that do not match.", pattern)
	}
	return fmt.Sprintf("%s Regular expression: %s", custom, pattern)
}

// GeneratePrompt builds the prompt asking the model for a single pattern.
func GeneratePrompt(description string) string {
	return fmt.Sprintf("Generate a regular expression for: %s. "+
		"Respond ONLY with the regular expression, without any other text.", description)
}

const structuredSystemPrompt = `You document regular expressions written in Go RE2 syntax.

Rules:
- Describe what the pattern accepts in short, plain sentences, one idea per sentence.
- Start with whether the pattern is anchored at the start, the end, both or neither.
- Give between 2 and 5 strings the pattern matches in valid_examples.
- Give between 2 and 5 strings the pattern rejects in invalid_examples, each close to a valid one.
- Examples are raw strings without quotes or commentary.`

func structuredUserMessage(pattern string) string {
	return "Regular expression: " + pattern
}
