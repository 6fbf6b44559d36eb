package install

import (
	"context"
	"fmt"
	"log"

	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/launchenv"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/progress"
)

// Request describes what should be installed
type Request struct {
	Version       string
	Loader        ModLoaderType
	LoaderVersion string
}

// Outcome is a finished installation
type Outcome struct {
	// Installation is the mod loader version if one was installed
	Installation *minecraft.ResolvedInstallation
	Base         *minecraft.ResolvedInstallation
	Planned      int
	Missing      int
	Result       *downloadmgr.Result
}

// Installer runs all install phases: fetch metadata, check existing files, download
// and (optionally) install a mod loader. Phases are never retried.
type Installer struct {
	Resolver *minecraft.Resolver
	Planner  *Planner
	Filter   *downloadmgr.Filter
	Engine   *downloadmgr.Engine
	Sink     progress.Sink
	Markers  Markers
	Loaders  map[ModLoaderType]ModLoader
	// IgnoreMarkers forces a full hash check
	IgnoreMarkers bool
}

// NewInstaller wires an Installer from env. Loaders have to be added by the caller
func NewInstaller(env *launchenv.Env, loader minecraft.DescriptorLoader, assets AssetIndexFetcher, engine *downloadmgr.Engine) *Installer {
	engine.Sink = env.Sink
	return &Installer{
		Resolver: &minecraft.Resolver{Platform: env.Platform, Loader: loader},
		Planner:  &Planner{Layout: env.Layout, Assets: assets},
		Filter:   &downloadmgr.Filter{Sink: env.Sink},
		Engine:   engine,
		Sink:     env.Sink,
		Loaders:  map[ModLoaderType]ModLoader{},
	}
}

// SetSink replaces the sink of the installer, its filter and engine
func (i *Installer) SetSink(sink progress.Sink) {
	i.Sink = sink
	if i.Filter != nil {
		i.Filter.Sink = sink
	}
	if i.Engine != nil {
		i.Engine.Sink = sink
	}
}

// Install installs req. Failures are returned as *PhaseError
func (i *Installer) Install(ctx context.Context, req Request) (*Outcome, error) {
	outcome := &Outcome{Result: &downloadmgr.Result{}}

	var planned []downloadmgr.PlannedFile
	err := i.phase(progress.StepFetchMetadata, func() error {
		inst, err := i.Resolver.Resolve(ctx, req.Version)
		if err != nil {
			return err
		}
		outcome.Base = inst
		outcome.Installation = inst
		planned, err = i.Planner.Plan(ctx, inst)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := i.fetch(ctx, planned, outcome); err != nil {
		return nil, err
	}

	if req.Loader != Vanilla {
		if err := i.installLoader(ctx, req, outcome); err != nil {
			return nil, err
		}
	}

	if err := i.Markers.Set(AssetsVerifiedMarker); err != nil {
		log.Printf("[WARN] could not write %s: %s", AssetsVerifiedMarker, err)
	}
	if err := i.Markers.Set(LibrariesVerifiedMarker); err != nil {
		log.Printf("[WARN] could not write %s: %s", LibrariesVerifiedMarker, err)
	}
	return outcome, nil
}

// Verify hash checks every planned file (markers are ignored) and returns the missing or corrupt ones
func (i *Installer) Verify(ctx context.Context, version string) ([]downloadmgr.PlannedFile, error) {
	var missing []downloadmgr.PlannedFile
	var planned []downloadmgr.PlannedFile
	err := i.phase(progress.StepFetchMetadata, func() error {
		inst, err := i.Resolver.Resolve(ctx, version)
		if err != nil {
			return err
		}
		planned, err = i.Planner.Plan(ctx, inst)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = i.phase(progress.StepHashCheck, func() error {
		var err error
		missing, err = i.Filter.Missing(ctx, planned)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		if err := i.Markers.Clear(); err != nil {
			log.Printf("[WARN] could not remove markers: %s", err)
		}
	}
	return missing, nil
}

// fetch runs the hash check and download phase for planned
func (i *Installer) fetch(ctx context.Context, planned []downloadmgr.PlannedFile, outcome *Outcome) error {
	var missing []downloadmgr.PlannedFile
	err := i.phase(progress.StepHashCheck, func() error {
		var err error
		missing, err = i.Filter.Missing(ctx, i.trusted(planned))
		return err
	})
	if err != nil {
		return err
	}
	outcome.Planned += len(planned)
	outcome.Missing += len(missing)

	return i.phase(progress.StepDownload, func() error {
		result, err := i.Engine.Run(ctx, missing)
		if result != nil {
			outcome.Result.Total += result.Total
			outcome.Result.Fetched += result.Fetched
			outcome.Result.Failed += result.Failed
			outcome.Result.Skipped += result.Skipped
			outcome.Result.Bytes += result.Bytes
		}
		return err
	})
}

// installLoader runs the mod loader installer and downloads the libraries it added
func (i *Installer) installLoader(ctx context.Context, req Request, outcome *Outcome) error {
	var libraries []downloadmgr.PlannedFile
	err := i.phase(progress.StepInstallModLoader, func() error {
		loader, ok := i.Loaders[req.Loader]
		if !ok {
			return fmt.Errorf("%s is not supported", req.Loader)
		}
		leafID, err := loader.Install(ctx, outcome.Base, req.LoaderVersion)
		if err != nil {
			return err
		}
		leaf, err := i.Resolver.Resolve(ctx, leafID)
		if err != nil {
			return err
		}
		outcome.Installation = leaf
		libraries, err = i.Planner.PlanLibraries(leaf)
		return err
	})
	if err != nil {
		return err
	}
	return i.fetch(ctx, libraries, outcome)
}

// trusted removes hashes of files covered by a marker. They are only checked for existence
func (i *Installer) trusted(planned []downloadmgr.PlannedFile) []downloadmgr.PlannedFile {
	if i.IgnoreMarkers {
		return planned
	}
	assets := i.Markers.Has(AssetsVerifiedMarker)
	libraries := i.Markers.Has(LibrariesVerifiedMarker)
	if !assets && !libraries {
		return planned
	}

	files := make([]downloadmgr.PlannedFile, len(planned))
	copy(files, planned)
	for n := range files {
		switch files[n].Category {
		case downloadmgr.CategoryAsset, downloadmgr.CategoryAssetIndex:
			if assets {
				files[n].Sha1 = ""
			}
		default:
			if libraries {
				files[n].Sha1 = ""
			}
		}
	}
	return files
}

// phase reports step to the sink and wraps errors in a PhaseError
func (i *Installer) phase(step progress.Step, fn func() error) error {
	sink := i.Sink
	if sink == nil {
		sink = progress.Nop{}
	}
	sink.Phase(step)
	err := fn()
	if err != nil {
		err = &PhaseError{Step: step, Err: err}
	}
	sink.Finish(step, err)
	return err
}
