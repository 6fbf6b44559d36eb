package minecraft

import (
	"encoding/json"
	"strings"

	"github.com/minepkg/minelaunch/internals/platform"
)

// DefaultLibraryBase is used for libraries that only declare a maven coordinate
const DefaultLibraryBase = "https://libraries.minecraft.net/"

// LibraryKind is the shape of a raw library entry
type LibraryKind uint8

const (
	// MavenLibrary only has a maven coordinate and an optional repository url
	MavenLibrary LibraryKind = iota
	// ArtifactLibrary has a `downloads.artifact` object
	ArtifactLibrary
	// NativeLibrary has `natives` and `downloads.classifiers`
	NativeLibrary
)

func (k LibraryKind) String() string {
	switch k {
	case NativeLibrary:
		return "native"
	case ArtifactLibrary:
		return "artifact"
	default:
		return "maven"
	}
}

// Library is a raw library entry of a version descriptor
type Library struct {
	// Name is the maven coordinate of this library
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	// URL is the maven repository base of this library. Only used by maven style entries
	URL string `json:"url,omitempty"`
	// Rules is a list of rules that determine whether this library should be included.
	// If no rules are specified, the library is included by default.
	Rules []Rule `json:"rules,omitempty"`
	// Natives maps OS names to a classifier key.
	// This field is no longer used after 1.19
	Natives map[string]string `json:"natives,omitempty"`
	Extract *Extract          `json:"extract,omitempty"`

	kind LibraryKind
}

// LibraryDownloads contains the main artifact and classifiers (natives)
type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

// Extract contains options used when extracting natives
type Extract struct {
	Exclude []string `json:"exclude,omitempty"`
}

// UnmarshalJSON parses the entry and decides its kind
func (l *Library) UnmarshalJSON(data []byte) error {
	type raw Library
	var lib raw
	if err := json.Unmarshal(data, &lib); err != nil {
		return err
	}
	*l = Library(lib)
	l.kind = kindOf(l)
	return nil
}

func kindOf(l *Library) LibraryKind {
	switch {
	case len(l.Natives) != 0 && l.Downloads != nil && len(l.Downloads.Classifiers) != 0:
		return NativeLibrary
	case l.Downloads != nil && l.Downloads.Artifact != nil:
		return ArtifactLibrary
	default:
		return MavenLibrary
	}
}

// Kind returns the shape of this entry
func (l *Library) Kind() LibraryKind {
	// entries constructed in code never went through UnmarshalJSON
	if l.kind == MavenLibrary {
		return kindOf(l)
	}
	return l.kind
}

// DownloadInfo is everything needed to fetch a library
type DownloadInfo struct {
	URL  string `json:"url" yaml:"url"`
	Path string `json:"path" yaml:"path"`
	Sha1 string `json:"sha1,omitempty" yaml:"sha1,omitempty"`
	Size int64  `json:"size,omitempty" yaml:"size,omitempty"`
}

// ResolvedLibrary is a library that applies to the current platform
type ResolvedLibrary struct {
	Name           string       `json:"name" yaml:"name"`
	Download       DownloadInfo `json:"download" yaml:"download"`
	IsNative       bool         `json:"native,omitempty" yaml:"native,omitempty"`
	ExtractExclude []string     `json:"extractExclude,omitempty" yaml:"extractExclude,omitempty"`
}

// Resolve turns the raw entry into a ResolvedLibrary. It returns false if the
// library does not apply to the platform or can not be resolved.
func (l *Library) Resolve(p platform.Info, features Features) (ResolvedLibrary, bool) {
	if !Allowed(l.Rules, p, features) {
		return ResolvedLibrary{}, false
	}

	switch l.Kind() {
	case NativeLibrary:
		classifier, ok := l.Natives[p.OSFamily.RuleName()]
		if !ok && p.OSFamily == platform.Macos {
			classifier, ok = l.Natives["macos"]
		}
		if !ok {
			return ResolvedLibrary{}, false
		}
		classifier = strings.ReplaceAll(classifier, "${arch}", p.Bits())
		native, ok := l.Downloads.Classifiers[classifier]
		if !ok {
			return ResolvedLibrary{}, false
		}
		resolved := ResolvedLibrary{
			Name:     l.Name,
			IsNative: true,
			Download: DownloadInfo{URL: native.URL, Path: native.Path, Sha1: native.Sha1, Size: native.Size},
		}
		if l.Extract != nil {
			resolved.ExtractExclude = l.Extract.Exclude
		}
		return resolved, true
	case ArtifactLibrary:
		a := l.Downloads.Artifact
		path := a.Path
		if path == "" {
			path, _ = MavenPath(l.Name)
		}
		return ResolvedLibrary{
			Name:     l.Name,
			Download: DownloadInfo{URL: a.URL, Path: path, Sha1: a.Sha1, Size: a.Size},
		}, true
	default:
		path, ok := MavenPath(l.Name)
		if !ok {
			return ResolvedLibrary{}, false
		}
		base := l.URL
		if base == "" {
			base = DefaultLibraryBase
		}
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return ResolvedLibrary{
			Name:     l.Name,
			Download: DownloadInfo{URL: base + path, Path: path},
		}, true
	}
}

// MavenPath converts a `group:artifact:version` coordinate into the repository
// path `group/as/dirs/artifact/version/artifact-version.jar`.
// Coordinates without exactly 3 segments are rejected.
func MavenPath(coordinate string) (string, bool) {
	parts := strings.Split(coordinate, ":")
	if len(parts) != 3 {
		return "", false
	}
	for _, part := range parts {
		if part == "" {
			return "", false
		}
	}
	group := strings.ReplaceAll(parts[0], ".", "/")
	artifact, version := parts[1], parts[2]
	return group + "/" + artifact + "/" + version + "/" + artifact + "-" + version + ".jar", true
}
