package rpkg

import (
	"bytes"
	"regexp"

	"github.com/qdoc-dev/qdoc/internal/document"
)

// Engine usage markers. Any one of these makes a document count as using
// the R engine.
var (
	// A fenced code block opening an R chunk: ```{r}, ```{r setup},
	// ```{r, echo=FALSE} and case variants.
	fenceRe = regexp.MustCompile("(?i)^\\s*`{3,}\\s*\\{r[\\s,}]")

	// A YAML engine declaration such as `engine: knitr` or `engine: "R"`.
	engineRe = regexp.MustCompile(`(?i)^\s*engine\s*:\s*['"]?(r|knitr)['"]?\s*$`)

	// The literal knitr namespace marker.
	knitrMarker = []byte("knitr::")
)

// Evaluation-disable markers, checked in front matter and body.
var (
	// Top-level `eval: false` (false spellings: false, no, 0) on its own
	// line at column zero.
	evalOffTopRe = regexp.MustCompile(`(?i)^eval\s*:\s*['"]?(false|no|0)['"]?\s*$`)

	// The same flag indented or dashed, as it appears inside a block.
	evalOffNestedRe = regexp.MustCompile(`(?i)^[\s-]+eval\s*:\s*['"]?(false|no|0)['"]?\s*$`)

	// The header line opening the execute block.
	executeRe = regexp.MustCompile(`(?i)^execute\s*:`)

	// A knitr option call disabling evaluation anywhere in the body.
	optsChunkRe = regexp.MustCompile(`opts_chunk\$set\([^)]*\beval\s*=\s*(FALSE|F|0)\b`)
)

// UsesEngine reports whether a single document carries any R engine marker.
func UsesEngine(content []byte) bool {
	if bytes.Contains(content, knitrMarker) {
		return true
	}
	for _, line := range document.Lines(content) {
		if fenceRe.MatchString(line) || engineRe.MatchString(line) {
			return true
		}
	}
	return false
}

// DetectUsage reports whether any document in the set uses the R engine.
// Returns at the first match; scanning order never changes the answer.
func DetectUsage(docs []document.Document) bool {
	for _, d := range docs {
		if UsesEngine(d.Content) {
			return true
		}
	}
	return false
}

// EvalDisabled reports whether a document suppresses evaluation globally:
// a top-level eval flag in front matter, the flag nested under the execute
// block, or an option call in the body.
func EvalDisabled(content []byte) bool {
	if block, ok := document.FrontMatter(content); ok {
		lines := document.Lines(block)
		if hasTopLevelEvalOff(lines) || hasNestedEvalOff(lines) {
			return true
		}
	}
	return hasDisableCall(content)
}

// AllDisabled reports whether every document in the set disables
// evaluation. Returns false at the first document that does not.
func AllDisabled(docs []document.Document) bool {
	for _, d := range docs {
		if !EvalDisabled(d.Content) {
			return false
		}
	}
	return true
}

func hasTopLevelEvalOff(lines []string) bool {
	for _, line := range lines {
		if evalOffTopRe.MatchString(line) {
			return true
		}
	}
	return false
}

// hasNestedEvalOff looks for the eval flag between an execute header and
// the next line whose first column holds a non-whitespace, non-dash
// character. The window is positional; indentation depth is not otherwise
// interpreted.
func hasNestedEvalOff(lines []string) bool {
	inBlock := false
	for _, line := range lines {
		if executeRe.MatchString(line) {
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}
		if len(line) > 0 && line[0] != ' ' && line[0] != '\t' && line[0] != '-' {
			inBlock = false
			continue
		}
		if evalOffNestedRe.MatchString(line) {
			return true
		}
	}
	return false
}

func hasDisableCall(content []byte) bool {
	for _, line := range document.Lines(content) {
		if optsChunkRe.MatchString(line) {
			return true
		}
	}
	return false
}
