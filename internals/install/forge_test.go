package install

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/ownhttp"
)

// fakeJava writes a shell script that prints output and exits with code
func fakeJava(t *testing.T, output string, code int) JavaPathFunc {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}
	script := filepath.Join(t.TempDir(), "java")
	body := fmt.Sprintf("#!/bin/sh\necho '%s'\nexit %d\n", output, code)
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	return func(ctx context.Context, major int) (string, error) {
		return script, nil
	}
}

func newForgeServer(t *testing.T) *httptest.Server {
	installer := "installer"
	mux := http.NewServeMux()
	mux.HandleFunc("/promotions_slim.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"promos": {"1.20.1-latest": "47.2.0", "1.20.1-recommended": "47.1.0", "1.19-latest": "41.1.0"}}`)
	})
	mux.HandleFunc("/net/minecraftforge/forge/1.20.1-47.1.0/forge-1.20.1-47.1.0-installer.jar", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, installer)
	})
	mux.HandleFunc("/net/minecraftforge/forge/1.20.1-47.1.0/forge-1.20.1-47.1.0-installer.jar.sha1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sum(installer))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newForge(t *testing.T, srv *httptest.Server, java JavaPathFunc) (*ForgeInstaller, *layout.Layout) {
	l := layout.New(t.TempDir(), t.TempDir())
	client := ownhttp.New()
	return &ForgeInstaller{
		Layout:     l,
		HTTP:       client,
		Downloader: &downloadmgr.Engine{Fetchers: downloadmgr.NewFetchers(client), Attempts: 1},
		JavaPath:   java,
		Maven:      srv.URL,
		Promotions: srv.URL + "/promotions_slim.json",
	}, l
}

func TestForgeInstaller_Version(t *testing.T) {
	srv := newForgeServer(t)
	f, _ := newForge(t, srv, nil)

	tests := []struct {
		game    string
		wanted  string
		want    string
		wantErr bool
	}{
		{"1.20.1", "", "47.1.0", false},
		{"1.20.1", "recommended", "47.1.0", false},
		{"1.20.1", "latest", "47.2.0", false},
		{"1.20.1", "47.0.3", "47.0.3", false},
		{"1.19", "", "41.1.0", false},
		{"1.7", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.game+"@"+tt.wanted, func(t *testing.T) {
			got, err := f.version(context.Background(), tt.game, tt.wanted)
			if (err != nil) != tt.wantErr {
				t.Fatalf("version() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("version() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestForgeInstaller_Install(t *testing.T) {
	srv := newForgeServer(t)
	f, l := newForge(t, srv, fakeJava(t, "The client installed successfully, you can now use the launcher", 0))

	// what the real installer would create
	if err := os.MkdirAll(l.VersionDir("1.20.1-forge-47.1.0"), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.VersionJSON("1.20.1-forge-47.1.0"), []byte(`{"id": "1.20.1-forge-47.1.0"}`), 0644); err != nil {
		t.Fatal(err)
	}

	id, err := f.Install(context.Background(), &minecraft.ResolvedInstallation{ID: "1.20.1"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if id != "1.20.1-forge-47.1.0" {
		t.Errorf("id = %s", id)
	}
	if _, err := os.Stat(filepath.Join(l.GameDir, "launcher_profiles.json")); err != nil {
		t.Error("launcher_profiles.json was not created")
	}
	if _, err := os.Stat(filepath.Join(l.TempDir(), "forge-1.20.1-47.1.0-installer.jar")); !os.IsNotExist(err) {
		t.Error("installer jar was not removed")
	}
}

func TestForgeInstaller_Failure(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		code     int
		wantCode int
	}{
		{"exit code", "something broke", 3, 3},
		{"error marker", "There was an error during installation", 0, 0},
		{"no marker", "done?", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newForgeServer(t)
			f, l := newForge(t, srv, fakeJava(t, tt.output, tt.code))

			_, err := f.Install(context.Background(), &minecraft.ResolvedInstallation{ID: "1.20.1"}, "47.1.0")
			var toolErr *ExternalToolError
			if !errors.As(err, &toolErr) {
				t.Fatalf("expected ExternalToolError, got %v", err)
			}
			if toolErr.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d", toolErr.ExitCode, tt.wantCode)
			}
			if toolErr.Output != tt.output+"\n" {
				t.Errorf("Output = %q", toolErr.Output)
			}
			if _, err := os.Stat(filepath.Join(l.TempDir(), "forge-1.20.1-47.1.0-installer.jar")); !os.IsNotExist(err) {
				t.Error("installer jar was not removed")
			}
		})
	}
}

func TestForgeInstaller_PartialDownloadRemoved(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/net/minecraftforge/forge/1.20.1-47.1.0/forge-1.20.1-47.1.0-installer.jar", func(w http.ResponseWriter, r *http.Request) {
		// the connection ends before the announced length
		w.Header().Set("Content-Length", "1024")
		fmt.Fprint(w, "partial")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	f, l := newForge(t, srv, nil)
	_, err := f.Install(context.Background(), &minecraft.ResolvedInstallation{ID: "1.20.1"}, "47.1.0")
	if err == nil {
		t.Fatal("expected the download to fail")
	}
	if _, err := os.Stat(filepath.Join(l.TempDir(), "forge-1.20.1-47.1.0-installer.jar")); !os.IsNotExist(err) {
		t.Error("partial installer jar was not removed")
	}
}

func TestForgeInstaller_InvalidVersion(t *testing.T) {
	srv := newForgeServer(t)
	f, _ := newForge(t, srv, nil)
	_, err := f.Install(context.Background(), &minecraft.ResolvedInstallation{ID: "1.20.1"}, "../../../evil")
	if err == nil {
		t.Fatal("expected an error for a version leaving the temp directory")
	}
}

func TestRunInstaller_MissingBinary(t *testing.T) {
	err := runInstaller(exec.Command(filepath.Join(t.TempDir(), "missing")))
	if err == nil {
		t.Fatal("expected an error")
	}
	var toolErr *ExternalToolError
	if errors.As(err, &toolErr) {
		t.Error("a missing binary is not a tool failure")
	}
}
