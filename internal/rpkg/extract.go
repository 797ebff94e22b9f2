package rpkg

import (
	"regexp"

	"github.com/qdoc-dev/qdoc/internal/document"
)

var (
	// A load call: library(pkg), require("pkg"), requireNamespace('pkg'),
	// loadNamespace(pkg). The first argument is captured; quoting and
	// leading whitespace are tolerated.
	loadCallRe = regexp.MustCompile(`\b(?:library|require|requireNamespace|loadNamespace)\s*\(\s*["']?([A-Za-z0-9._]+)`)

	// A namespace reference: pkg::fn or pkg:::fn. The package name must
	// start with a letter and be immediately followed by the colons.
	nsRefRe = regexp.MustCompile(`\b([A-Za-z][A-Za-z0-9._]*):{2,3}[A-Za-z0-9._]`)
)

// ExtractReferences collects every package name referenced by a load call
// or a namespace marker across the document set. The result is a set;
// callers sort it once filtering is done.
func ExtractReferences(docs []document.Document) map[string]struct{} {
	refs := make(map[string]struct{})
	for _, d := range docs {
		for _, m := range loadCallRe.FindAllSubmatch(d.Content, -1) {
			refs[string(m[1])] = struct{}{}
		}
		for _, m := range nsRefRe.FindAllSubmatch(d.Content, -1) {
			refs[string(m[1])] = struct{}{}
		}
	}
	return refs
}
