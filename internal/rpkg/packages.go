package rpkg

import "slices"

// weaveOnly is the manifest content when every document disables
// evaluation: rendering still needs the weaving toolchain.
var weaveOnly = []string{"knitr", "rmarkdown"}

// alwaysRequired is unioned into every general manifest regardless of
// what the documents reference.
var alwaysRequired = []string{"evaluate", "knitr", "rmarkdown"}

// basePackages ship with every R installation and never belong in a
// manifest.
var basePackages = []string{
	"base",
	"compiler",
	"datasets",
	"grDevices",
	"graphics",
	"grid",
	"methods",
	"parallel",
	"splines",
	"stats",
	"stats4",
	"tcltk",
	"tools",
	"utils",
}

// recommendedPackages are bundled with standard R distributions and are
// likewise excluded.
var recommendedPackages = []string{
	"boot",
	"class",
	"cluster",
	"codetools",
	"foreign",
	"KernSmooth",
	"lattice",
	"MASS",
	"Matrix",
	"mgcv",
	"nlme",
	"nnet",
	"rpart",
	"spatial",
	"survival",
}

// excluded reports whether a name is filtered from general manifests:
// base or recommended packages, names configured away, and fragments too
// short to be real package names.
func excluded(name string, opts Options) bool {
	if len(name) < 2 {
		return true
	}
	if slices.Contains(basePackages, name) || slices.Contains(recommendedPackages, name) {
		return true
	}
	return slices.Contains(opts.Exclude, name)
}

// weaveManifest builds the manifest for the all-disabled outcome: the
// weaving toolchain plus any configured extras, sorted and deduplicated.
func weaveManifest(opts Options) []string {
	set := make(map[string]struct{}, len(weaveOnly)+len(opts.AlwaysRequire))
	for _, p := range weaveOnly {
		set[p] = struct{}{}
	}
	for _, p := range opts.AlwaysRequire {
		set[p] = struct{}{}
	}
	return sorted(set)
}

// generalManifest filters extracted references, unions in the built-in
// and configured always-required packages, and returns a sorted list.
func generalManifest(refs map[string]struct{}, opts Options) []string {
	set := make(map[string]struct{}, len(refs)+len(alwaysRequired))
	for name := range refs {
		if !excluded(name, opts) {
			set[name] = struct{}{}
		}
	}
	for _, p := range alwaysRequired {
		set[p] = struct{}{}
	}
	for _, p := range opts.AlwaysRequire {
		set[p] = struct{}{}
	}
	return sorted(set)
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
