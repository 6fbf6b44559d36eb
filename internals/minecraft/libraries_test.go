package minecraft

import (
	"encoding/json"
	"testing"

	"github.com/minepkg/minelaunch/internals/platform"
)

func TestMavenPath(t *testing.T) {
	tests := []struct {
		coordinate string
		want       string
		wantOK     bool
	}{
		{"net.example:foo:1.0", "net/example/foo/1.0/foo-1.0.jar", true},
		{"net.fabricmc:fabric-loader:0.14.21", "net/fabricmc/fabric-loader/0.14.21/fabric-loader-0.14.21.jar", true},
		{"org.lwjgl:lwjgl:3.3.1:natives-linux", "", false},
		{"broken", "", false},
		{"a::1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.coordinate, func(t *testing.T) {
			got, ok := MavenPath(tt.coordinate)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("MavenPath() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

const nativeLibJSON = `{
	"name": "org.lwjgl.lwjgl:lwjgl-platform:2.9.4",
	"downloads": {
		"classifiers": {
			"natives-linux": {"path": "org/lwjgl/lwjgl-platform-natives-linux.jar", "sha1": "aa", "size": 10, "url": "https://libraries.minecraft.net/org/lwjgl/lwjgl-platform-natives-linux.jar"},
			"natives-windows-64": {"path": "org/lwjgl/lwjgl-platform-natives-windows-64.jar", "sha1": "bb", "size": 11, "url": "https://libraries.minecraft.net/org/lwjgl/lwjgl-platform-natives-windows-64.jar"}
		}
	},
	"natives": {"linux": "natives-linux", "windows": "natives-windows-${arch}"},
	"extract": {"exclude": ["META-INF/"]}
}`

func TestLibrary_Resolve(t *testing.T) {
	linux := platform.New("linux", "amd64", "")
	windows := platform.New("windows", "amd64", "")
	osx := platform.New("darwin", "amd64", "")

	var native Library
	if err := json.Unmarshal([]byte(nativeLibJSON), &native); err != nil {
		t.Fatal(err)
	}
	if native.Kind() != NativeLibrary {
		t.Fatalf("expected native kind, got %s", native.Kind())
	}

	tests := []struct {
		name     string
		lib      Library
		platform platform.Info
		wantOK   bool
		want     ResolvedLibrary
	}{
		{
			name:     "native on linux",
			lib:      native,
			platform: linux,
			wantOK:   true,
			want: ResolvedLibrary{
				Name:     "org.lwjgl.lwjgl:lwjgl-platform:2.9.4",
				IsNative: true,
				Download: DownloadInfo{
					URL:  "https://libraries.minecraft.net/org/lwjgl/lwjgl-platform-natives-linux.jar",
					Path: "org/lwjgl/lwjgl-platform-natives-linux.jar",
					Sha1: "aa",
					Size: 10,
				},
			},
		},
		{
			name:     "native with arch placeholder",
			lib:      native,
			platform: windows,
			wantOK:   true,
			want: ResolvedLibrary{
				Name:     "org.lwjgl.lwjgl:lwjgl-platform:2.9.4",
				IsNative: true,
				Download: DownloadInfo{
					URL:  "https://libraries.minecraft.net/org/lwjgl/lwjgl-platform-natives-windows-64.jar",
					Path: "org/lwjgl/lwjgl-platform-natives-windows-64.jar",
					Sha1: "bb",
					Size: 11,
				},
			},
		},
		{
			name:     "native without classifier for os",
			lib:      native,
			platform: osx,
			wantOK:   false,
		},
		{
			name: "artifact",
			lib: Library{
				Name: "com.mojang:brigadier:1.0.18",
				Downloads: &LibraryDownloads{Artifact: &Artifact{
					Path: "com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar",
					Sha1: "cc",
					Size: 12,
					URL:  "https://libraries.minecraft.net/com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar",
				}},
			},
			platform: linux,
			wantOK:   true,
			want: ResolvedLibrary{
				Name: "com.mojang:brigadier:1.0.18",
				Download: DownloadInfo{
					URL:  "https://libraries.minecraft.net/com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar",
					Path: "com/mojang/brigadier/1.0.18/brigadier-1.0.18.jar",
					Sha1: "cc",
					Size: 12,
				},
			},
		},
		{
			name:     "maven default url",
			lib:      Library{Name: "net.example:foo:1.0"},
			platform: linux,
			wantOK:   true,
			want: ResolvedLibrary{
				Name: "net.example:foo:1.0",
				Download: DownloadInfo{
					URL:  "https://libraries.minecraft.net/net/example/foo/1.0/foo-1.0.jar",
					Path: "net/example/foo/1.0/foo-1.0.jar",
				},
			},
		},
		{
			name:     "maven custom url without slash",
			lib:      Library{Name: "net.fabricmc:intermediary:1.20.1", URL: "https://maven.fabricmc.net"},
			platform: linux,
			wantOK:   true,
			want: ResolvedLibrary{
				Name: "net.fabricmc:intermediary:1.20.1",
				Download: DownloadInfo{
					URL:  "https://maven.fabricmc.net/net/fabricmc/intermediary/1.20.1/intermediary-1.20.1.jar",
					Path: "net/fabricmc/intermediary/1.20.1/intermediary-1.20.1.jar",
				},
			},
		},
		{
			name:     "maven invalid coordinate",
			lib:      Library{Name: "only:two"},
			platform: linux,
			wantOK:   false,
		},
		{
			name: "disallowed by rules",
			lib: Library{
				Name:  "ca.weblite:java-objc-bridge:1.1",
				Rules: []Rule{{Action: "allow", OS: &OS{Name: "osx"}}},
			},
			platform: linux,
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.lib.Resolve(tt.platform, nil)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Name != tt.want.Name || got.Download != tt.want.Download || got.IsNative != tt.want.IsNative {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
