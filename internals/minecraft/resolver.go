package minecraft

import (
	"context"
	"strings"

	"github.com/minepkg/minelaunch/internals/platform"
)

// MaxInheritanceDepth is the maximum number of `inheritsFrom` hops
const MaxInheritanceDepth = 64

// defaultLegacyJVMArgs are used for versions that only have `minecraftArguments`
var defaultLegacyJVMArgs = []string{"-Djava.library.path=${natives_directory}", "-cp", "${classpath}"}

// DescriptorLoader loads version descriptors by id
type DescriptorLoader interface {
	Load(ctx context.Context, id string) (*VersionDescriptor, error)
}

// LoaderFunc is a function that implements DescriptorLoader
type LoaderFunc func(ctx context.Context, id string) (*VersionDescriptor, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, id string) (*VersionDescriptor, error) {
	return f(ctx, id)
}

// Resolver merges a version with all its ancestors into a ResolvedInstallation
type Resolver struct {
	Platform platform.Info
	Features Features
	Loader   DescriptorLoader
}

// Resolve loads the version `id` and resolves it
func (r *Resolver) Resolve(ctx context.Context, id string) (*ResolvedInstallation, error) {
	leaf, err := r.Loader.Load(ctx, id)
	if err != nil {
		return nil, &MissingAncestorError{ID: id, Err: err}
	}
	return r.ResolveDescriptor(ctx, leaf)
}

// ResolveDescriptor resolves an already loaded leaf descriptor
func (r *Resolver) ResolveDescriptor(ctx context.Context, leaf *VersionDescriptor) (*ResolvedInstallation, error) {
	chain, err := r.walk(ctx, leaf)
	if err != nil {
		return nil, err
	}
	inst, raw := r.merge(chain)

	for i := range raw {
		if lib, ok := raw[i].Resolve(r.Platform, r.Features); ok {
			inst.Libraries = append(inst.Libraries, lib)
		}
	}

	if err := validate(inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// walk follows `inheritsFrom` and returns the chain, leaf first
func (r *Resolver) walk(ctx context.Context, leaf *VersionDescriptor) ([]*VersionDescriptor, error) {
	chain := []*VersionDescriptor{leaf}
	ids := []string{leaf.ID}
	visited := map[string]bool{leaf.ID: true}

	current := leaf
	for current.InheritsFrom != "" {
		parentID := current.InheritsFrom
		if visited[parentID] || len(chain) > MaxInheritanceDepth {
			return nil, &CyclicInheritanceError{Chain: append(ids, parentID)}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parent, err := r.Loader.Load(ctx, parentID)
		if err != nil {
			return nil, &MissingAncestorError{ID: parentID, Err: err}
		}

		visited[parentID] = true
		ids = append(ids, parentID)
		chain = append(chain, parent)
		current = parent
	}
	return chain, nil
}

// merge processes the chain root first. It returns the (incomplete) installation
// and the raw libraries, leaf first.
func (r *Resolver) merge(chain []*VersionDescriptor) (*ResolvedInstallation, []Library) {
	leaf := chain[0]
	inst := &ResolvedInstallation{
		ID:        leaf.ID,
		Downloads: make(map[string]Artifact),
		Arguments: ResolvedArguments{Game: []string{}, JVM: []string{}},
	}

	var (
		raw                []Library
		jar                string
		clientFrom         string
		minecraftArguments string
		rawGameArgs        int
		rawJVMArgs         int
	)

	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i]

		setIfNotEmpty(&inst.MainClass, d.MainClass)
		setIfNotEmpty(&inst.AssetsID, d.Assets)
		setIfNotEmpty(&inst.Type, d.Type)
		setIfNotEmpty(&inst.ReleaseTime, d.ReleaseTime)
		setIfNotEmpty(&inst.Time, d.Time)
		setIfNotEmpty(&jar, d.Jar)
		setIfNotEmpty(&minecraftArguments, d.MinecraftArguments)

		if d.AssetIndex != nil && d.AssetIndex.ID != "" {
			inst.AssetIndex = d.AssetIndex
		}
		if d.JavaVersion != nil && d.JavaVersion.MajorVersion != 0 {
			inst.JavaVersion = d.JavaVersion
		}
		if d.MinimumLauncherVersion > inst.MinimumLauncherVersion {
			inst.MinimumLauncherVersion = d.MinimumLauncherVersion
		}

		for key, download := range d.Downloads {
			inst.Downloads[key] = download
		}
		if _, ok := d.Downloads["client"]; ok {
			clientFrom = d.ID
		}

		// logging is replaced as a whole, never merged per side
		if len(d.Logging) != 0 {
			inst.Logging = d.Logging
		}

		// prepend: libraries closer to the root end up last
		raw = append(append(make([]Library, 0, len(d.Libraries)+len(raw)), d.Libraries...), raw...)

		if d.Arguments != nil {
			rawGameArgs += len(d.Arguments.Game)
			rawJVMArgs += len(d.Arguments.JVM)
			inst.Arguments.Game = append(inst.Arguments.Game, r.evaluate(d.Arguments.Game)...)
			inst.Arguments.JVM = append(inst.Arguments.JVM, r.evaluate(d.Arguments.JVM)...)
			if supportsQuickPlay(d.Arguments.Game) {
				inst.QuickPlay = true
			}
		}

		if i != 0 {
			inst.InheritanceChain = append([]string{d.ID}, inst.InheritanceChain...)
		}
	}

	if rawGameArgs == 0 && minecraftArguments != "" {
		inst.Legacy = true
		inst.Arguments.Game = strings.Fields(minecraftArguments)
		if rawJVMArgs == 0 {
			inst.Arguments.JVM = append([]string{}, defaultLegacyJVMArgs...)
		}
	}

	if inst.AssetsID == "" && inst.AssetIndex != nil {
		inst.AssetsID = inst.AssetIndex.ID
	}

	switch {
	case clientFrom != "":
		inst.JarID = clientFrom
	case jar != "":
		inst.JarID = jar
	default:
		inst.JarID = chain[len(chain)-1].ID
	}

	if inst.InheritanceChain == nil {
		inst.InheritanceChain = []string{}
	}
	for _, d := range chain {
		if d.Source != "" {
			inst.DescriptorPaths = append(inst.DescriptorPaths, d.Source)
		}
	}

	return inst, raw
}

// evaluate applies the rules of each argument and flattens the values
func (r *Resolver) evaluate(args []Argument) []string {
	flat := make([]string, 0, len(args))
	for _, arg := range args {
		if Allowed(arg.Rules, r.Platform, r.Features) {
			flat = append(flat, arg.Value...)
		}
	}
	return flat
}

func supportsQuickPlay(args []Argument) bool {
	for _, arg := range args {
		for _, v := range arg.Value {
			if v == "--quickPlayMultiplayer" {
				return true
			}
		}
	}
	return false
}

func validate(inst *ResolvedInstallation) error {
	reason := ""
	switch {
	case inst.MainClass == "":
		reason = "mainClass is missing"
	case inst.AssetIndex == nil:
		reason = "assetIndex is missing"
	case len(inst.Downloads) == 0:
		reason = "downloads are missing"
	case len(inst.Libraries) == 0:
		reason = "no libraries apply to this platform"
	default:
		return nil
	}
	return &IncompleteInstallationError{ID: inst.ID, Reason: reason}
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
