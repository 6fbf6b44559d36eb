package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLayoutPaths(t *testing.T) {
	l := New(filepath.FromSlash("/game"), filepath.FromSlash("/data"))

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"version json", l.VersionJSON("1.20.1"), "/game/versions/1.20.1/1.20.1.json"},
		{"version jar", l.VersionJar("1.20.1"), "/game/versions/1.20.1/1.20.1.jar"},
		{"natives", l.NativesDir("1.20.1"), "/game/versions/1.20.1/natives"},
		{"library", l.LibraryPath("com/example/lib/1.0/lib-1.0.jar"), "/game/libraries/com/example/lib/1.0/lib-1.0.jar"},
		{"asset index", l.AssetIndexPath("5"), "/game/assets/indexes/5.json"},
		{"asset object", l.AssetObjectPath("fe32f3b8"), "/game/assets/objects/fe/fe32f3b8"},
		{"instance", l.InstanceDir("survival"), "/data/instances/survival"},
		{"instance cache", l.InstanceCacheDir("survival"), "/data/cache/survival"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Errorf("got %s, want %s", tt.got, filepath.FromSlash(tt.want))
			}
		})
	}
}

func TestWithin(t *testing.T) {
	l := New(filepath.FromSlash("/game"), filepath.FromSlash("/data"))
	if !l.Within(filepath.FromSlash("/game/libraries/a.jar")) {
		t.Error("expected library path to be within layout")
	}
	if l.Within(filepath.FromSlash("/etc/passwd")) {
		t.Error("expected /etc/passwd to be outside layout")
	}
}

func TestContains(t *testing.T) {
	l := New(filepath.FromSlash("/game"), filepath.FromSlash("/data"))
	tests := []struct {
		name string
		root string
		path string
		want bool
	}{
		{"library", l.LibrariesDir(), l.LibraryPath("com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar"), true},
		{"root itself", l.LibrariesDir(), l.LibrariesDir(), true},
		{"library escapes", l.LibrariesDir(), l.LibraryPath("../../../../etc/cron.d/evil"), false},
		{"library into sibling dir", l.LibrariesDir(), l.LibraryPath("../versions/x/x.jar"), false},
		{"asset escapes", l.AssetsDir(), l.AssetObjectPath("../../../../../tmp/pwned"), false},
		{"logging escapes", l.VersionDir("1.20"), l.LoggingConfigPath("1.20", "../../../../.bashrc"), false},
		{"dotdot prefix is a name", l.LibrariesDir(), filepath.Join(l.LibrariesDir(), "..foo"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.root, tt.path); got != tt.want {
				t.Errorf("Contains(%s, %s) = %v, want %v", tt.root, tt.path, got, tt.want)
			}
		})
	}

	if l.Within(l.AssetObjectPath("../../../../../tmp/pwned")) {
		t.Error("expected escaped asset path to be outside layout")
	}
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	l := New(filepath.Join(root, "game"), filepath.Join(root, "data"))
	for i := 0; i < 2; i++ {
		if err := l.EnsureDirs(); err != nil {
			t.Fatal(err)
		}
	}
	for _, dir := range []string{l.VersionsDir(), l.LibrariesDir(), l.AssetsDir(), l.InstancesDir(), l.CacheDir(), l.TempDir()} {
		if _, err := os.Stat(dir); err != nil {
			t.Errorf("expected %s to exist: %v", dir, err)
		}
	}
}

func TestValidVersionID(t *testing.T) {
	l := New(filepath.FromSlash("/game"), filepath.FromSlash("/data"))
	tests := []struct {
		id   string
		want bool
	}{
		{"1.20.1", true},
		{"fabric-loader-0.14.21-1.20.1", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../../etc", false},
		{"a/b", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := l.ValidVersionID(tt.id); got != tt.want {
				t.Errorf("ValidVersionID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
