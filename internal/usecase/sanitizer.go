package usecase

import (
	"regexp"
	"strings"
)

// Compiled regex patterns for output sanitization
var (
	// Matches a fenced code block with an optional language tag; the inner
	// content is capture group 1
	fencedBlockPattern = regexp.MustCompile("(?s)```[a-zA-Z0-9]*[ \t]*\n?(.*?)```")

	// Matches /* */ block comments, possibly spanning lines
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Matches //-style comments: whole comment lines, or trailing comments
	// preceded by whitespace (so URLs like http:// survive)
	fullLineCommentPattern = regexp.MustCompile(`(?m)^[ \t]*//.*$`)
	trailingCommentPattern = regexp.MustCompile(`(?m)[ \t]+//.*$`)

	// Matches lines that contain only a truncation marker
	ellipsisLinePattern = regexp.MustCompile(`(?m)^[ \t]*\.{3,}[ \t]*$`)
)

// SanitizeModelOutput normalizes a free-form model reply toward valid JSON.
// Every step targets one observed failure mode of generative models wrapping
// structured output in conversational filler. The transform is pure and
// idempotent: sanitizing twice equals sanitizing once.
func SanitizeModelOutput(raw string) string {
	// Step 1: if a fenced code block is present, keep only its inner content
	if m := fencedBlockPattern.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}

	// Step 2: strip block and line comments
	raw = blockCommentPattern.ReplaceAllString(raw, "")
	raw = fullLineCommentPattern.ReplaceAllString(raw, "")
	raw = trailingCommentPattern.ReplaceAllString(raw, "")

	// Step 3: drop blank lines
	raw = dropBlankLines(raw)

	// Step 4: the array is the canonical payload shape - truncate anything
	// before the first '[' and after the last ']'. When no array brackets
	// exist the text is left intact so the object-fragment fallback of the
	// extractor still has input to scan.
	if i := strings.Index(raw, "["); i >= 0 {
		if j := strings.LastIndex(raw, "]"); j > i {
			raw = raw[i : j+1]
		}
	}

	// Step 5: remove trailing truncation markers the model appends when it
	// believes output was cut off
	raw = ellipsisLinePattern.ReplaceAllString(raw, "")
	raw = strings.TrimSpace(raw)
	for strings.HasSuffix(raw, "...") {
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "..."))
	}

	return raw
}

// dropBlankLines removes lines that are empty or whitespace-only
func dropBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
