package minecraft

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// VersionDescriptor is a version.json document. It describes one version and
// optionally references a parent version with `inheritsFrom`.
// It is never modified after loading.
type VersionDescriptor struct {
	ID           string `json:"id"`
	InheritsFrom string `json:"inheritsFrom,omitempty"`
	Type         string `json:"type,omitempty"`
	Time         string `json:"time,omitempty"`
	ReleaseTime  string `json:"releaseTime,omitempty"`
	// MinimumLauncherVersion is only informative
	MinimumLauncherVersion int    `json:"minimumLauncherVersion,omitempty"`
	MainClass              string `json:"mainClass,omitempty"`
	// Jar overwrites the version whose jar is used. Used by some older mod loader profiles
	Jar        string         `json:"jar,omitempty"`
	Libraries  []Library      `json:"libraries,omitempty"`
	AssetIndex *AssetIndexRef `json:"assetIndex,omitempty"`
	// Assets is the id of the asset index
	Assets    string              `json:"assets,omitempty"`
	Downloads map[string]Artifact `json:"downloads,omitempty"`
	// Arguments is the argument system used since 1.13
	Arguments *Arguments `json:"arguments,omitempty"`
	// MinecraftArguments are used before 1.13
	MinecraftArguments string                   `json:"minecraftArguments,omitempty"`
	Logging            map[string]LoggingConfig `json:"logging,omitempty"`
	JavaVersion        *JavaVersion             `json:"javaVersion,omitempty"`
	ComplianceLevel    int                      `json:"complianceLevel,omitempty"`

	// Source is the file this descriptor was read from (if any)
	Source string `json:"-"`
}

// AssetIndexRef points to the asset index document of a version
type AssetIndexRef struct {
	ID        string `json:"id"`
	Sha1      string `json:"sha1,omitempty"`
	Size      int64  `json:"size,omitempty"`
	TotalSize int64  `json:"totalSize,omitempty"`
	URL       string `json:"url"`
}

// Arguments contains the conditional game and jvm arguments
type Arguments struct {
	Game []Argument `json:"game,omitempty"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// Argument is either a plain string or an object with a value and rules
type Argument struct {
	Value stringSlice `json:"value"`
	Rules []Rule      `json:"rules,omitempty"`
}

// UnmarshalJSON accepts the plain string form as well as the object form
func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) != 0 && data[0] == '"' {
		var plain string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*a = Argument{Value: stringSlice{plain}}
		return nil
	}

	type object Argument
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*a = Argument(obj)
	return nil
}

// MarshalJSON writes unconditional arguments back as plain strings
func (a Argument) MarshalJSON() ([]byte, error) {
	if len(a.Rules) == 0 && len(a.Value) == 1 {
		return json.Marshal(a.Value[0])
	}
	type object Argument
	return json.Marshal(object(a))
}

// LoggingConfig is the logging configuration of one side (client or server)
type LoggingConfig struct {
	// Argument is a jvm argument containing ${path}
	Argument string      `json:"argument"`
	File     LoggingFile `json:"file"`
	Type     string      `json:"type"`
}

// LoggingFile is the log4j configuration file
type LoggingFile struct {
	ID   string `json:"id"`
	Sha1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// JavaVersion is the java runtime a version requires
type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// ParseDescriptor parses a version.json document
func ParseDescriptor(data []byte) (*VersionDescriptor, error) {
	desc := &VersionDescriptor{}
	if err := json.Unmarshal(data, desc); err != nil {
		return nil, errors.Wrap(err, "invalid version descriptor")
	}
	if desc.ID == "" {
		return nil, errors.New("invalid version descriptor: id is missing")
	}
	return desc, nil
}

// ReadDescriptor reads a version.json from disk
func ReadDescriptor(path string) (*VersionDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	desc, err := ParseDescriptor(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	desc.Source = path
	return desc, nil
}
