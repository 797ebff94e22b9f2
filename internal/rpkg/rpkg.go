// Package rpkg detects the R packages a set of Quarto documents requires
// and maintains the package manifest.
//
// Detection is a single deterministic pass over the loaded document set:
//
//	collect -> detect usage -> detect global disable -> extract -> filter -> write
//
// Every check is a heuristic text pattern over line-oriented content; no
// YAML or R grammar is parsed and no code is ever executed. Runs that find
// nothing to do (no documents, no engine usage) remove a stale manifest
// and succeed. The only fatal condition is failing to write or remove the
// manifest itself.
package rpkg

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/qdoc-dev/qdoc/internal/document"
	"github.com/qdoc-dev/qdoc/internal/log"
)

// DefaultManifestName is the manifest file created at the workspace root.
const DefaultManifestName = "R.pkgs"

// Options configure a detector run.
type Options struct {
	Root          string   // workspace root; the manifest lives here
	ManifestName  string   // defaults to DefaultManifestName
	AlwaysRequire []string // extra packages added to every manifest
	Exclude       []string // extra names filtered from extraction
}

// Outcome names the pipeline path a run took.
type Outcome int

const (
	// OutcomeNoDocuments: the resolved document set was empty.
	OutcomeNoDocuments Outcome = iota
	// OutcomeNoUsage: no document carries an R engine marker.
	OutcomeNoUsage
	// OutcomeAllDisabled: every document suppresses evaluation, so only
	// the weave-only set is needed.
	OutcomeAllDisabled
	// OutcomeGeneral: references were extracted and filtered.
	OutcomeGeneral
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoDocuments:
		return "no-documents"
	case OutcomeNoUsage:
		return "no-usage"
	case OutcomeAllDisabled:
		return "all-disabled"
	case OutcomeGeneral:
		return "general"
	}
	return "unknown"
}

// MarshalText lets outcomes appear as their names in JSON output.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result describes what a run did to the manifest.
type Result struct {
	Outcome   Outcome  `json:"outcome"`
	Path      string   `json:"path"`
	Packages  []string `json:"packages,omitempty"` // manifest content, nil when removed
	Removed   bool     `json:"removed"`            // a stale manifest was deleted
	Documents int      `json:"documents"`          // size of the scanned set
}

// Detect executes the detection pipeline over docs without touching the
// filesystem, returning the manifest a run would produce.
func Detect(ctx context.Context, docs []document.Document, opts Options) Result {
	l := log.FromContext(ctx)

	name := opts.ManifestName
	if name == "" {
		name = DefaultManifestName
	}
	res := Result{
		Path:      filepath.Join(opts.Root, name),
		Documents: len(docs),
	}

	if len(docs) == 0 {
		l.Debug("no documents to scan")
		res.Outcome = OutcomeNoDocuments
		return res
	}

	if !DetectUsage(docs) {
		l.Debug("no engine usage detected", "documents", strconv.Itoa(len(docs)))
		res.Outcome = OutcomeNoUsage
		return res
	}

	if AllDisabled(docs) {
		l.Debug("all documents disable evaluation")
		res.Outcome = OutcomeAllDisabled
		res.Packages = weaveManifest(opts)
		return res
	}

	refs := ExtractReferences(docs)
	l.Debug("extracted references", "count", strconv.Itoa(len(refs)))

	res.Outcome = OutcomeGeneral
	res.Packages = generalManifest(refs, opts)
	return res
}

// Run executes the detection pipeline over docs and creates, overwrites or
// removes the manifest under opts.Root accordingly.
func Run(ctx context.Context, docs []document.Document, opts Options) (Result, error) {
	res := Detect(ctx, docs, opts)

	switch res.Outcome {
	case OutcomeNoDocuments, OutcomeNoUsage:
		removed, err := RemoveManifest(res.Path)
		if err != nil {
			return res, err
		}
		res.Removed = removed
		return res, nil
	default:
		return res, WriteManifest(res.Path, res.Packages)
	}
}
