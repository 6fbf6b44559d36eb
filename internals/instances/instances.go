// Package instances manages named game directories and their launch settings.
package instances

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	strcase "github.com/stoewer/go-strcase"

	"github.com/minepkg/minelaunch/internals/layout"
)

const (
	// SettingsFile is the settings file in the instance root
	SettingsFile = "instance.toml"
	// LegacySettingsFile is imported if no SettingsFile exists
	LegacySettingsFile = "instance.cfg"
)

var (
	// ErrNoInstance is returned if the instance does not exist
	ErrNoInstance = errors.New("instance not found")
	// ErrExists is returned when creating an existing instance
	ErrExists = errors.New("instance already exists")
	// ErrMissingVersion is returned when the settings do not contain a version
	ErrMissingVersion = errors.New("instance settings are missing the version field")
)

// Instance is a named game directory
type Instance struct {
	Name     string
	Dir      string
	Settings *Settings
}

// GameDir is where saves, mods and options of this instance live
func (i *Instance) GameDir() string {
	return filepath.Join(i.Dir, ".minecraft")
}

// Settings are stored in instance.toml
type Settings struct {
	Version       string `toml:"version"`
	Loader        string `toml:"loader,omitempty"`
	LoaderVersion string `toml:"loaderVersion,omitempty"`
	// Installed is the version descriptor of the last installation (the mod loader
	// version if there is one). It is written after every successful install
	Installed string `toml:"installed,omitempty"`
	Launch        Launch `toml:"launch"`
	Hooks         Hooks  `toml:"hooks"`
}

// InstalledVersion returns the version that has to be verified: the last installed
// descriptor or Version if the instance was never installed
func (s *Settings) InstalledVersion() string {
	if s.Installed != "" {
		return s.Installed
	}
	return s.Version
}

// Launch contains the java and window settings
type Launch struct {
	// Java is a path to a java binary, "system" or empty for a managed runtime
	Java string `toml:"java,omitempty"`
	// MinMemory and MaxMemory are in MiB. 0 picks a default
	MinMemory  int      `toml:"minMemory,omitempty"`
	MaxMemory  int      `toml:"maxMemory,omitempty"`
	GC         string   `toml:"gc,omitempty"`
	JVMArgs    []string `toml:"jvmArgs,omitempty"`
	GameArgs   []string `toml:"gameArgs,omitempty"`
	Width      int      `toml:"width,omitempty"`
	Height     int      `toml:"height,omitempty"`
	Fullscreen bool     `toml:"fullscreen,omitempty"`
	Demo       bool     `toml:"demo,omitempty"`
	// Server is joined after startup
	Server string `toml:"server,omitempty"`
	Port   int    `toml:"port,omitempty"`
}

// Hooks are shell commands run by the launch script
type Hooks struct {
	PreLaunch string `toml:"preLaunch,omitempty"`
	// Wrapper is prepended to the java command (eg. "gamemoderun")
	Wrapper  string `toml:"wrapper,omitempty"`
	PostExit string `toml:"postExit,omitempty"`
}

// Manager finds and creates instances below the instances directory
type Manager struct {
	Layout *layout.Layout
}

// NewManager returns a new Manager
func NewManager(l *layout.Layout) *Manager {
	return &Manager{Layout: l}
}

// DirName converts a display name into the directory name of an instance
func DirName(name string) string {
	return strcase.KebabCase(strings.TrimSpace(name))
}

// Create creates a new instance
func (m *Manager) Create(name string, settings *Settings) (*Instance, error) {
	if settings.Version == "" {
		return nil, ErrMissingVersion
	}
	dirName := DirName(name)
	if dirName == "" {
		return nil, errors.Errorf("invalid instance name %q", name)
	}
	instance := &Instance{Name: dirName, Dir: m.Layout.InstanceDir(dirName), Settings: settings}
	if _, err := os.Stat(instance.Dir); err == nil {
		return nil, errors.Wrap(ErrExists, dirName)
	}

	if err := os.MkdirAll(instance.GameDir(), os.ModePerm); err != nil {
		return nil, err
	}
	return instance, m.Save(instance)
}

// Save writes instance.toml
func (m *Manager) Save(i *Instance) error {
	buf := &bytes.Buffer{}
	if err := toml.NewEncoder(buf).Order(toml.OrderPreserve).Encode(i.Settings); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(i.Dir, SettingsFile), buf.Bytes(), 0644)
}

// Get loads an instance. Instances that only have a legacy instance.cfg are imported
func (m *Manager) Get(name string) (*Instance, error) {
	dirName := DirName(name)
	instance := &Instance{Name: dirName, Dir: m.Layout.InstanceDir(dirName)}

	raw, err := os.ReadFile(filepath.Join(instance.Dir, SettingsFile))
	switch {
	case err == nil:
		settings := &Settings{}
		if err := toml.Unmarshal(raw, settings); err != nil {
			return nil, errors.Wrapf(err, "invalid %s of %s", SettingsFile, dirName)
		}
		instance.Settings = settings
	case os.IsNotExist(err):
		settings, err := ImportLegacy(filepath.Join(instance.Dir, LegacySettingsFile))
		if os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrap(ErrNoInstance, dirName)
		}
		if err != nil {
			return nil, err
		}
		instance.Settings = settings
		if err := m.Save(instance); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if instance.Settings.Version == "" {
		return nil, errors.Wrap(ErrMissingVersion, dirName)
	}
	return instance, nil
}

// SetInstalled records the installed version id in instance.toml. The settings are
// read from disk again so overwrites of the running command are not persisted.
func (m *Manager) SetInstalled(name string, id string) error {
	instance, err := m.Get(name)
	if err != nil {
		return err
	}
	if instance.Settings.Installed == id {
		return nil
	}
	instance.Settings.Installed = id
	return m.Save(instance)
}

// List returns the names of all instances
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.Layout.InstancesDir())
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(m.Layout.InstancesDir(), entry.Name())
		for _, file := range []string{SettingsFile, LegacySettingsFile} {
			if _, err := os.Stat(filepath.Join(dir, file)); err == nil {
				names = append(names, entry.Name())
				break
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
