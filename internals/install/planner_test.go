package install

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/platform"
)

type fakeAssets struct {
	index *minecraft.AssetIndex
	err   error
	calls int
}

func (f *fakeAssets) FetchAssetIndex(ctx context.Context, ref *minecraft.AssetIndexRef, assetsID string) (*minecraft.AssetIndex, error) {
	f.calls++
	return f.index, f.err
}

const vanillaDescriptor = `{
	"id": "1.20.1",
	"type": "release",
	"mainClass": "net.minecraft.client.main.Main",
	"assets": "5",
	"assetIndex": {"id": "5", "url": "https://piston-meta.mojang.com/v1/packages/5.json"},
	"downloads": {"client": {"sha1": "abc123", "size": 3, "url": "https://piston-data.mojang.com/v1/objects/abc123/client.jar"}},
	"libraries": [
		{
			"name": "com.mojang:brigadier:1.0.18",
			"downloads": {"artifact": {
				"path": "com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar",
				"sha1": "c1ef1234",
				"size": 10,
				"url": "https://libraries.minecraft.net/com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar"
			}}
		}
	]
}`

func twoAssets() *minecraft.AssetIndex {
	return &minecraft.AssetIndex{Objects: map[string]minecraft.AssetObject{
		"minecraft/sounds/b.ogg": {Hash: "bb00000000000000000000000000000000000000", Size: 2},
		"minecraft/lang/a.json":  {Hash: "aa00000000000000000000000000000000000000", Size: 1},
	}}
}

func resolve(t *testing.T, raw string) *minecraft.ResolvedInstallation {
	t.Helper()
	desc, err := minecraft.ParseDescriptor([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	r := &minecraft.Resolver{Platform: platform.New("linux", "amd64", "")}
	inst, err := r.ResolveDescriptor(context.Background(), desc)
	if err != nil {
		t.Fatal(err)
	}
	return inst
}

func TestPlan_VanillaFileSet(t *testing.T) {
	l := layout.New("/game", "/data")
	p := &Planner{Layout: l, Assets: &fakeAssets{index: twoAssets()}}

	files, err := p.Plan(context.Background(), resolve(t, vanillaDescriptor))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 5 {
		t.Fatalf("got %d planned files, want 5: %+v", len(files), files)
	}

	want := []struct {
		category downloadmgr.Category
		target   string
		url      string
	}{
		{downloadmgr.CategoryClient, l.VersionJar("1.20.1"), "https://piston-data.mojang.com/v1/objects/abc123/client.jar"},
		{downloadmgr.CategoryLibrary, l.LibraryPath("com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar"), "https://libraries.minecraft.net/com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar"},
		{downloadmgr.CategoryAsset, l.AssetObjectPath("aa00000000000000000000000000000000000000"), "https://resources.download.minecraft.net/aa/aa00000000000000000000000000000000000000"},
		{downloadmgr.CategoryAsset, l.AssetObjectPath("bb00000000000000000000000000000000000000"), "https://resources.download.minecraft.net/bb/bb00000000000000000000000000000000000000"},
		{downloadmgr.CategoryAssetIndex, l.AssetIndexPath("5"), "https://piston-meta.mojang.com/v1/packages/5.json"},
	}
	for i, w := range want {
		f := files[i]
		if f.Category != w.category || f.Target != w.target || f.URL != w.url {
			t.Errorf("file %d = %+v, want %s %s %s", i, f, w.category, w.target, w.url)
		}
	}
	if files[0].Sha1 != "abc123" {
		t.Errorf("client sha1 = %s", files[0].Sha1)
	}
	if files[4].Sha1 != "" {
		t.Errorf("asset index should not have a hash, got %s", files[4].Sha1)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	p := &Planner{Layout: layout.New("/game", "/data"), Assets: &fakeAssets{index: twoAssets()}}
	inst := resolve(t, vanillaDescriptor)

	first, err := p.Plan(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := p.Plan(context.Background(), inst)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatal("plan changed between runs")
		}
	}
}

func TestPlan_DuplicateTargets(t *testing.T) {
	index := twoAssets()
	// same object under two names
	index.Objects["minecraft/lang/copy.json"] = index.Objects["minecraft/lang/a.json"]

	p := &Planner{Layout: layout.New("/game", "/data"), Assets: &fakeAssets{index: index}}
	inst := resolve(t, vanillaDescriptor)
	inst.Libraries = append(inst.Libraries, inst.Libraries[0])

	files, err := p.Plan(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 5 {
		t.Errorf("got %d files, want 5", len(files))
	}
	seen := map[string]bool{}
	for _, f := range files {
		if seen[f.Target] {
			t.Errorf("duplicate target %s", f.Target)
		}
		seen[f.Target] = true
	}
}

func TestPlan_Logging(t *testing.T) {
	raw := `{
		"id": "1.20.1", "mainClass": "M",
		"assetIndex": {"id": "5", "url": "https://example.com/5.json"},
		"downloads": {"client": {"sha1": "abc123"}},
		"libraries": [{"name": "a:b:1"}],
		"logging": {"client": {
			"argument": "-Dlog4j.configurationFile=${path}",
			"file": {"id": "client-1.12.xml", "sha1": "ff", "size": 888, "url": "https://example.com/client-1.12.xml"},
			"type": "log4j2-xml"
		}}
	}`
	l := layout.New("/game", "/data")
	p := &Planner{Layout: l, Assets: &fakeAssets{index: &minecraft.AssetIndex{}}}
	files, err := p.Plan(context.Background(), resolve(t, raw))
	if err != nil {
		t.Fatal(err)
	}

	last := files[len(files)-1]
	if last.Category != downloadmgr.CategoryLogging {
		t.Fatalf("last file is %s, want logging", last.Category)
	}
	if last.Target != filepath.Join(l.VersionDir("1.20.1"), "client-1.12.xml") || last.Sha1 != "ff" {
		t.Errorf("unexpected logging file %+v", last)
	}
	// client url falls back to the sha1 pattern
	if files[0].URL != "https://piston-data.mojang.com/v1/objects/abc123/client.jar" {
		t.Errorf("client url = %s", files[0].URL)
	}
}

func TestPlan_AssetIndexError(t *testing.T) {
	p := &Planner{Layout: layout.New("/game", "/data"), Assets: &fakeAssets{err: errors.New("offline")}}
	_, err := p.Plan(context.Background(), resolve(t, vanillaDescriptor))

	var planningErr *PlanningError
	if !errors.As(err, &planningErr) {
		t.Fatalf("expected PlanningError, got %v", err)
	}
}

func TestPlanner_LibraryURL(t *testing.T) {
	lib := func(url string, native bool) minecraft.ResolvedLibrary {
		return minecraft.ResolvedLibrary{
			Name:     "org.lwjgl:lwjgl:3.3.1",
			IsNative: native,
			Download: minecraft.DownloadInfo{URL: url, Path: "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"},
		}
	}

	tests := []struct {
		name   string
		mirror string
		lib    minecraft.ResolvedLibrary
		want   string
	}{
		{"official kept", "", lib("https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar", false), "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"},
		{"official rebased", "https://mirror.example.com/maven", lib("https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar", false), "https://mirror.example.com/maven/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"},
		{"empty url uses mirror", "https://mirror.example.com/", lib("", false), "https://mirror.example.com/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"},
		{"empty url uses default", "", lib("", false), "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"},
		{"other host kept", "https://mirror.example.com", lib("https://maven.fabricmc.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar", false), "https://maven.fabricmc.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar"},
		{"native verbatim", "https://mirror.example.com", lib("https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar", true), "https://libraries.minecraft.net/org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-linux.jar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Planner{LibraryMirror: tt.mirror}
			if got := p.libraryURL(tt.lib); got != tt.want {
				t.Errorf("libraryURL() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPlanLibraries_SkipsNativeWithoutURL(t *testing.T) {
	inst := resolve(t, vanillaDescriptor)
	inst.Libraries = append(inst.Libraries, minecraft.ResolvedLibrary{
		Name:     "org.lwjgl:lwjgl:3.3.1",
		IsNative: true,
		Download: minecraft.DownloadInfo{Path: "org/lwjgl/lwjgl-natives.jar"},
	})

	p := &Planner{Layout: layout.New("/game", "/data")}
	files, err := p.PlanLibraries(inst)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want client + 1 library", len(files))
	}
}

func TestPlan_RejectsEscapingPaths(t *testing.T) {
	l := layout.New(filepath.FromSlash("/game"), filepath.FromSlash("/data"))

	t.Run("library is skipped", func(t *testing.T) {
		inst := resolve(t, vanillaDescriptor)
		inst.Libraries = append(inst.Libraries, minecraft.ResolvedLibrary{
			Name:     "evil:evil:1",
			Download: minecraft.DownloadInfo{URL: "https://example.com/evil.jar", Path: "../../../../etc/cron.d/evil"},
		})
		p := &Planner{Layout: l, Assets: &fakeAssets{index: twoAssets()}}
		files, err := p.Plan(context.Background(), inst)
		if err != nil {
			t.Fatal(err)
		}
		for _, f := range files {
			if !l.Within(f.Target) {
				t.Errorf("planned target %s is outside of the layout", f.Target)
			}
			if f.URL == "https://example.com/evil.jar" {
				t.Errorf("library with escaping path was planned: %+v", f)
			}
		}
		if len(files) != 5 {
			t.Errorf("got %d files, want 5", len(files))
		}
	})

	t.Run("asset hash fails planning", func(t *testing.T) {
		index := twoAssets()
		index.Objects["minecraft/evil"] = minecraft.AssetObject{Hash: "../../../../../tmp/pwned", Size: 1}
		p := &Planner{Layout: l, Assets: &fakeAssets{index: index}}
		_, err := p.Plan(context.Background(), resolve(t, vanillaDescriptor))
		var planningErr *PlanningError
		if !errors.As(err, &planningErr) {
			t.Fatalf("expected PlanningError, got %v", err)
		}
	})

	t.Run("logging id fails planning", func(t *testing.T) {
		inst := resolve(t, vanillaDescriptor)
		inst.Logging = map[string]minecraft.LoggingConfig{"client": {
			File: minecraft.LoggingFile{ID: "../../../../.bashrc", URL: "https://example.com/log.xml"},
		}}
		p := &Planner{Layout: l, Assets: &fakeAssets{index: twoAssets()}}
		_, err := p.Plan(context.Background(), inst)
		var planningErr *PlanningError
		if !errors.As(err, &planningErr) {
			t.Fatalf("expected PlanningError, got %v", err)
		}
	})

	t.Run("asset index id is checked before fetching", func(t *testing.T) {
		inst := resolve(t, vanillaDescriptor)
		inst.AssetsID = "../../../x"
		assets := &fakeAssets{index: twoAssets()}
		p := &Planner{Layout: l, Assets: assets}
		_, err := p.Plan(context.Background(), inst)
		var planningErr *PlanningError
		if !errors.As(err, &planningErr) {
			t.Fatalf("expected PlanningError, got %v", err)
		}
		if assets.calls != 0 {
			t.Errorf("asset index was fetched %d times", assets.calls)
		}
	})
}
