package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryConfig represents problems with config files.
	CategoryConfig IssueCategory = "config"
	// CategoryDocument represents problems with workspace documents.
	CategoryDocument IssueCategory = "document"
	// CategoryManifest represents drift between the manifest and the
	// document set.
	CategoryManifest IssueCategory = "manifest"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // file path, relative to the workspace root where possible
	Description string        // human-readable description
	FixAction   string        // what --fix would do, empty when manual
	Category    IssueCategory // issue category
}

// Stats tracks check counts by category.
type Stats struct {
	ConfigIssues   int // config files with problems
	DocsValid      int // documents read and parsed cleanly
	DocsUnreadable int // tracked documents that could not be read
	DocsBrokenMeta int // documents whose front matter is not valid YAML
	ManifestIssues int // manifest drift issues
}
