package install

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/logparser"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/ownhttp"
)

const (
	// ForgeMaven hosts the forge installers
	ForgeMaven = "https://maven.minecraftforge.net"
	// ForgePromotions lists the recommended forge version per game version
	ForgePromotions = "https://files.minecraftforge.net/net/minecraftforge/forge/promotions_slim.json"

	maxToolOutput = 4 * 1024
)

// JavaPathFunc returns the java binary for a major java version
type JavaPathFunc func(ctx context.Context, major int) (string, error)

// ForgeInstaller runs the official forge installer in client mode
type ForgeInstaller struct {
	Layout     *layout.Layout
	HTTP       *http.Client
	Downloader *downloadmgr.Engine
	JavaPath   JavaPathFunc
	// Maven and Promotions overwrite ForgeMaven and ForgePromotions
	Maven      string
	Promotions string
}

type forgePromotions struct {
	Promos map[string]string `json:"promos"`
}

// Install downloads and runs the installer. The installer jar is removed afterwards
func (f *ForgeInstaller) Install(ctx context.Context, base *minecraft.ResolvedInstallation, loaderVersion string) (string, error) {
	version, err := f.version(ctx, base.ID, loaderVersion)
	if err != nil {
		return "", err
	}

	full := base.ID + "-" + version
	jar := filepath.Join(f.Layout.TempDir(), "forge-"+full+"-installer.jar")
	installerURL := fmt.Sprintf("%s/net/minecraftforge/forge/%s/forge-%s-installer.jar", f.maven(), full, full)

	if filepath.Dir(jar) != f.Layout.TempDir() {
		return "", errors.Errorf("invalid forge version %q", version)
	}
	// partial downloads are removed too
	defer os.Remove(jar)

	planned := downloadmgr.PlannedFile{URL: installerURL, Target: jar}
	// the maven publishes checksums next to every file
	if sum, err := ownhttp.Get(ctx, f.HTTP, installerURL+".sha1"); err == nil {
		planned.Sha1 = strings.TrimSpace(string(sum))
	}
	if err := f.Downloader.DownloadAndVerify(ctx, planned); err != nil {
		return "", errors.Wrap(err, "could not download forge installer")
	}

	if err := f.ensureLauncherProfiles(); err != nil {
		return "", err
	}

	java, err := f.JavaPath(ctx, base.JavaMajorVersion())
	if err != nil {
		return "", errors.Wrap(err, "no java for the forge installer")
	}

	cmd := exec.CommandContext(ctx, java, "-jar", jar, "--installClient", f.Layout.GameDir)
	cmd.Dir = f.Layout.TempDir()
	if err := runInstaller(cmd); err != nil {
		return "", err
	}

	return f.findVersion(base.ID, version)
}

func (f *ForgeInstaller) maven() string {
	if f.Maven != "" {
		return f.Maven
	}
	return ForgeMaven
}

// version returns loaderVersion or looks up the recommended (or latest) build
func (f *ForgeInstaller) version(ctx context.Context, gameVersion string, loaderVersion string) (string, error) {
	if loaderVersion != "" && loaderVersion != "latest" && loaderVersion != "recommended" {
		return loaderVersion, nil
	}

	promotionsURL := f.Promotions
	if promotionsURL == "" {
		promotionsURL = ForgePromotions
	}
	promotions := forgePromotions{}
	if err := ownhttp.GetJSON(ctx, f.HTTP, promotionsURL, &promotions); err != nil {
		return "", errors.Wrap(err, "could not fetch forge promotions")
	}

	keys := []string{gameVersion + "-recommended", gameVersion + "-latest"}
	if loaderVersion == "latest" {
		keys = []string{gameVersion + "-latest", gameVersion + "-recommended"}
	}
	for _, key := range keys {
		if v, ok := promotions.Promos[key]; ok {
			return v, nil
		}
	}
	return "", errors.Wrapf(ErrNoLoader, "forge does not support %s", gameVersion)
}

// ensureLauncherProfiles creates the file the installer expects in the game dir
func (f *ForgeInstaller) ensureLauncherProfiles() error {
	if err := os.MkdirAll(f.Layout.TempDir(), os.ModePerm); err != nil {
		return err
	}
	profiles := filepath.Join(f.Layout.GameDir, "launcher_profiles.json")
	if _, err := os.Stat(profiles); err == nil {
		return nil
	}
	if err := os.MkdirAll(f.Layout.GameDir, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(profiles, []byte(`{"profiles": {}}`+"\n"), 0644)
}

// findVersion returns the id the installer created
func (f *ForgeInstaller) findVersion(gameVersion string, version string) (string, error) {
	candidates := []string{
		gameVersion + "-forge-" + version,
		gameVersion + "-forge" + gameVersion + "-" + version,
		"forge-" + version,
	}
	for _, id := range candidates {
		if _, err := os.Stat(f.Layout.VersionJSON(id)); err == nil {
			return id, nil
		}
	}

	entries, err := os.ReadDir(f.Layout.VersionsDir())
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() && strings.Contains(name, "forge") && strings.Contains(name, version) {
			return name, nil
		}
	}
	return "", fmt.Errorf("forge installer did not create a version for %s-%s", gameVersion, version)
}

// runInstaller runs cmd and classifies every output line
func runInstaller(cmd *exec.Cmd) error {
	out := &bytes.Buffer{}
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "could not start forge installer")
	}

	result := logparser.Unmatched
	scanned := make(chan struct{})
	go func() {
		defer close(scanned)
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			line := scanner.Text()
			out.WriteString(line + "\n")
			if kind := logparser.ForgeInstallerTable.Classify(line); kind != logparser.Unmatched {
				result = kind
			}
		}
		// drain if the scanner gave up on a long line
		io.Copy(io.Discard, pr)
	}()

	waitErr := cmd.Wait()
	pw.Close()
	<-scanned

	if waitErr == nil && result == logparser.InstallSucceeded {
		return nil
	}

	toolErr := &ExternalToolError{Tool: "forge installer", Output: tail(out.String(), maxToolOutput)}
	exitErr := &exec.ExitError{}
	if errors.As(waitErr, &exitErr) {
		toolErr.ExitCode = exitErr.ExitCode()
	} else if waitErr != nil {
		return errors.Wrap(waitErr, "forge installer")
	}
	return toolErr
}

func tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
