package minecraft

import (
	"regexp"
	"sync"

	"github.com/minepkg/minelaunch/internals/platform"
)

// Rule is a rule that can be applied to an argument or library.
// It can be used to determine if the argument or library should be applied to a specific OS.
type Rule struct {
	Action   string          `json:"action"`
	OS       *OS             `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// OS defines the feature of an OS that can be used in a [Rule] to determine if it should be applied.
type OS struct {
	Name string `json:"name,omitempty"`
	// Version of the os (a regex string)
	Version string `json:"version,omitempty"`
	// Arch of the system
	Arch string `json:"arch,omitempty"`
}

// Features is the set of enabled launcher features like "is_demo_user" or "has_custom_resolution".
// Features that are not in the map are disabled.
type Features map[string]bool

// Allowed decides if something guarded by `rules` applies to the platform.
// An empty rule list allows everything. Otherwise the last rule that
// matches decides, and nothing is allowed if no rule matches.
func Allowed(rules []Rule, p platform.Info, features Features) bool {
	if len(rules) == 0 {
		return true
	}

	allowed := false
	for _, rule := range rules {
		if !rule.matches(p, features) {
			continue
		}
		switch rule.Action {
		case "allow":
			allowed = true
		case "disallow":
			allowed = false
		}
	}
	return allowed
}

func (r Rule) matches(p platform.Info, features Features) bool {
	if r.OS != nil {
		if r.OS.Name != "" && !p.OSFamily.Matches(r.OS.Name) {
			return false
		}
		if r.OS.Version != "" {
			re, err := compileVersion(r.OS.Version)
			if err != nil || !re.MatchString(p.OSVersion) {
				return false
			}
		}
		if r.OS.Arch != "" && platform.NormalizeArch(r.OS.Arch) != p.Arch {
			return false
		}
	}

	for name, want := range r.Features {
		if features[name] != want {
			return false
		}
	}
	return true
}

var versionPatterns sync.Map

// compileVersion caches compiled os.version patterns. The same handful of
// patterns is evaluated for every library of every version.
func compileVersion(pattern string) (*regexp.Regexp, error) {
	if cached, ok := versionPatterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	versionPatterns.Store(pattern, re)
	return re, nil
}
