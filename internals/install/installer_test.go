package install

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/launchenv"
	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/ownhttp"
	"github.com/minepkg/minelaunch/internals/platform"
	"github.com/minepkg/minelaunch/internals/progress"
)

func sum(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

type testMirror struct {
	srv   *httptest.Server
	hits  atomic.Int64
	files map[string]string
}

func newMirror(t *testing.T) *testMirror {
	m := &testMirror{files: map[string]string{
		"/client.jar":     "client",
		"/com/example/lib/1.0/lib-1.0.jar":                            "library",
		"/net/fabricmc/fabric-loader/0.14.21/fabric-loader-0.14.21.jar": "loader",
		"/indexes/5.json": `{"objects": {}}`,
	}}
	for _, content := range []string{"asset-a", "asset-b"} {
		hash := sum(content)
		m.files["/assets/"+hash[:2]+"/"+hash] = content
	}
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.hits.Add(1)
		content, ok := m.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, content)
	}))
	t.Cleanup(m.srv.Close)
	return m
}

func (m *testMirror) descriptors() map[string]*minecraft.VersionDescriptor {
	return map[string]*minecraft.VersionDescriptor{
		"1.20.1": {
			ID:         "1.20.1",
			MainClass:  "net.minecraft.client.main.Main",
			Assets:     "5",
			AssetIndex: &minecraft.AssetIndexRef{ID: "5", URL: m.srv.URL + "/indexes/5.json"},
			Downloads: map[string]minecraft.Artifact{
				"client": {Sha1: sum("client"), URL: m.srv.URL + "/client.jar"},
			},
			Libraries: []minecraft.Library{
				{Name: "com.example:lib:1.0", URL: m.srv.URL + "/"},
			},
		},
		"fabric-loader-0.14.21-1.20.1": {
			ID:           "fabric-loader-0.14.21-1.20.1",
			InheritsFrom: "1.20.1",
			MainClass:    "net.fabricmc.loader.impl.launch.knot.KnotClient",
			Libraries: []minecraft.Library{
				{Name: "net.fabricmc:fabric-loader:0.14.21", URL: m.srv.URL + "/"},
			},
		},
	}
}

type fakeLoader struct {
	id    string
	calls int
}

func (f *fakeLoader) Install(ctx context.Context, base *minecraft.ResolvedInstallation, loaderVersion string) (string, error) {
	f.calls++
	return f.id, nil
}

func newTestInstaller(t *testing.T, m *testMirror) (*Installer, *layout.Layout, *progress.Recorder) {
	l := layout.New(t.TempDir(), t.TempDir())
	rec := &progress.Recorder{}
	env := &launchenv.Env{
		Platform: platform.New("linux", "amd64", ""),
		Layout:   l,
		HTTP:     ownhttp.New(),
		Sink:     rec,
	}

	descs := m.descriptors()
	loader := minecraft.LoaderFunc(func(ctx context.Context, id string) (*minecraft.VersionDescriptor, error) {
		d, ok := descs[id]
		if !ok {
			return nil, fmt.Errorf("%s not found", id)
		}
		return d, nil
	})

	index := &minecraft.AssetIndex{Objects: map[string]minecraft.AssetObject{
		"a": {Hash: sum("asset-a"), Size: 7},
		"b": {Hash: sum("asset-b"), Size: 7},
	}}
	engine := &downloadmgr.Engine{Fetchers: downloadmgr.NewFetchers(env.HTTP), MaxConcurrency: 4}

	i := NewInstaller(env, loader, &fakeAssets{index: index}, engine)
	i.Planner.AssetMirror = m.srv.URL + "/assets"
	i.Markers = Markers{Dir: l.InstanceDir("test")}
	return i, l, rec
}

func TestInstaller_Vanilla(t *testing.T) {
	m := newMirror(t)
	i, l, rec := newTestInstaller(t, m)

	outcome, err := i.Install(context.Background(), Request{Version: "1.20.1"})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Planned != 5 || outcome.Missing != 5 || outcome.Result.Fetched != 5 {
		t.Errorf("unexpected outcome %+v (result %+v)", outcome, outcome.Result)
	}

	jar, err := os.ReadFile(l.VersionJar("1.20.1"))
	if err != nil || string(jar) != "client" {
		t.Errorf("client jar not downloaded: %v", err)
	}
	if !i.Markers.Has(AssetsVerifiedMarker) || !i.Markers.Has(LibrariesVerifiedMarker) {
		t.Error("markers were not written")
	}

	phases := []progress.Step{}
	for _, e := range rec.Events() {
		if e.Kind == "phase" {
			phases = append(phases, e.Step)
		}
	}
	want := []progress.Step{progress.StepFetchMetadata, progress.StepHashCheck, progress.StepDownload}
	if fmt.Sprint(phases) != fmt.Sprint(want) {
		t.Errorf("phases = %v, want %v", phases, want)
	}

	// everything is there now
	hits := m.hits.Load()
	outcome, err = i.Install(context.Background(), Request{Version: "1.20.1"})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Missing != 0 || m.hits.Load() != hits {
		t.Errorf("second install downloaded %d files", outcome.Missing)
	}
}

func TestInstaller_MarkersSkipHashes(t *testing.T) {
	m := newMirror(t)
	i, l, _ := newTestInstaller(t, m)
	if _, err := i.Install(context.Background(), Request{Version: "1.20.1"}); err != nil {
		t.Fatal(err)
	}

	// corrupt the jar. markers make the check existence only
	if err := os.WriteFile(l.VersionJar("1.20.1"), []byte("broken"), 0644); err != nil {
		t.Fatal(err)
	}
	outcome, err := i.Install(context.Background(), Request{Version: "1.20.1"})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Missing != 0 {
		t.Errorf("expected marker to skip the hash check, %d missing", outcome.Missing)
	}

	// verify ignores markers and clears them
	missing, err := i.Verify(context.Background(), "1.20.1")
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 1 || missing[0].Category != downloadmgr.CategoryClient {
		t.Errorf("verify found %+v, want the client jar", missing)
	}
	if i.Markers.Has(LibrariesVerifiedMarker) {
		t.Error("markers should be removed after a failed verify")
	}
}

func TestInstaller_ModLoader(t *testing.T) {
	m := newMirror(t)
	i, l, _ := newTestInstaller(t, m)
	loader := &fakeLoader{id: "fabric-loader-0.14.21-1.20.1"}
	i.Loaders[Fabric] = loader

	outcome, err := i.Install(context.Background(), Request{Version: "1.20.1", Loader: Fabric})
	if err != nil {
		t.Fatal(err)
	}
	if loader.calls != 1 {
		t.Errorf("loader called %d times", loader.calls)
	}
	if outcome.Installation.ID != "fabric-loader-0.14.21-1.20.1" || outcome.Base.ID != "1.20.1" {
		t.Errorf("unexpected ids %s / %s", outcome.Installation.ID, outcome.Base.ID)
	}
	if outcome.Installation.JarID != "1.20.1" {
		t.Errorf("JarID = %s", outcome.Installation.JarID)
	}

	path, _ := minecraft.MavenPath("net.fabricmc:fabric-loader:0.14.21")
	if _, err := os.Stat(l.LibraryPath(path)); err != nil {
		t.Errorf("loader library missing: %s", err)
	}
}

func TestInstaller_PhaseErrors(t *testing.T) {
	m := newMirror(t)

	t.Run("unknown version", func(t *testing.T) {
		i, _, rec := newTestInstaller(t, m)
		_, err := i.Install(context.Background(), Request{Version: "nope"})

		var phaseErr *PhaseError
		if !errors.As(err, &phaseErr) || phaseErr.Step != progress.StepFetchMetadata {
			t.Fatalf("expected fetch metadata PhaseError, got %v", err)
		}
		if !errors.Is(err, minecraft.ErrResolution) {
			t.Errorf("expected resolution error, got %v", err)
		}
		events := rec.Events()
		if last := events[len(events)-1]; last.Kind != "finish" || last.Err == nil {
			t.Errorf("last event = %+v", last)
		}
	})

	t.Run("unsupported loader", func(t *testing.T) {
		i, _, _ := newTestInstaller(t, m)
		_, err := i.Install(context.Background(), Request{Version: "1.20.1", Loader: Forge})

		var phaseErr *PhaseError
		if !errors.As(err, &phaseErr) || phaseErr.Step != progress.StepInstallModLoader {
			t.Fatalf("expected mod loader PhaseError, got %v", err)
		}
		if i.Markers.Has(LibrariesVerifiedMarker) {
			t.Error("markers written for a failed install")
		}
	})

	t.Run("download failure", func(t *testing.T) {
		i, _, _ := newTestInstaller(t, m)
		lib := "/com/example/lib/1.0/lib-1.0.jar"
		delete(m.files, lib)
		defer func() { m.files[lib] = "library" }()

		_, err := i.Install(context.Background(), Request{Version: "1.20.1"})
		var sessionErr *downloadmgr.SessionFailedError
		if !errors.As(err, &sessionErr) {
			t.Fatalf("expected SessionFailedError, got %v", err)
		}
		var phaseErr *PhaseError
		if !errors.As(err, &phaseErr) || phaseErr.Step != progress.StepDownload {
			t.Errorf("expected download PhaseError, got %v", err)
		}
	})
}

func TestParseModLoaderType(t *testing.T) {
	tests := []struct {
		in      string
		want    ModLoaderType
		wantErr bool
	}{
		{"", Vanilla, false},
		{"Fabric", Fabric, false},
		{"quilt", Quilt, false},
		{" forge ", Forge, false},
		{"rift", Vanilla, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModLoaderType(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseModLoaderType(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}
