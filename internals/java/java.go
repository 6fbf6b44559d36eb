package java

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	archiver "github.com/mholt/archiver/v3"
	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/ownhttp"
	"github.com/minepkg/minelaunch/internals/platform"
)

// Java is a managed java runtime
type Java struct {
	dir              string
	asset            *AdoptAsset
	needsDownloading bool
	platform         platform.Info
	http             *http.Client
}

// Bin returns the path to the java binary
func (j *Java) Bin() string {
	var bin string
	switch j.platform.OSFamily {
	case platform.Windows:
		bin = "bin/java.exe"
	case platform.Macos:
		bin = "Contents/Home/bin/java"
	default:
		bin = "bin/java"
	}

	return filepath.Join(j.dir, filepath.FromSlash(bin))
}

// NeedsDownloading reports if Update has to be called first
func (j *Java) NeedsDownloading() bool {
	return j.needsDownloading
}

// Update downloads or updates this java version
func (j *Java) Update(ctx context.Context) error {
	// remove everything
	if err := os.RemoveAll(j.dir); err != nil {
		return err
	}
	os.RemoveAll(j.dir + ".tmp")

	archive, err := j.download(ctx)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	// the archive contains a single root directory like "jdk-17.0.8+7-jre"
	rootDirName := ""
	err = archiver.Walk(archive, func(f archiver.File) error {
		if f.IsDir() {
			rootDirName = f.Name()
			return archiver.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return err
	}

	// extract the whole archive. avoids https://github.com/mholt/archiver/issues/289
	if err := archiver.Unarchive(archive, j.dir+".tmp"); err != nil {
		return err
	}
	if err := os.Rename(filepath.Join(j.dir+".tmp", rootDirName), j.dir); err != nil {
		return err
	}
	// leftovers of macos archives
	if err := os.RemoveAll(j.dir + ".tmp"); err != nil {
		return err
	}

	asset, err := os.Create(filepath.Join(j.dir, "asset.json"))
	if err != nil {
		return err
	}
	defer asset.Close()
	if err := json.NewEncoder(asset).Encode(j.asset); err != nil {
		return err
	}

	j.needsDownloading = false
	return nil
}

// download fetches the archive into a temporary file and checks its sha256
func (j *Java) download(ctx context.Context) (string, error) {
	pkg := j.asset.Binary.Package
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pkg.Link, nil)
	if err != nil {
		return "", err
	}
	res, err := j.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", &ownhttp.StatusError{URL: pkg.Link, StatusCode: res.StatusCode}
	}

	ext := ".tar.gz"
	if !strings.HasSuffix(pkg.Link, ".tar.gz") {
		ext = filepath.Ext(pkg.Link)
	}
	archive, err := os.CreateTemp("", "minelaunch-java.*"+ext)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(archive, hasher), res.Body); err != nil {
		os.Remove(archive.Name())
		return "", err
	}
	if sum := hex.EncodeToString(hasher.Sum(nil)); pkg.Checksum != "" && sum != pkg.Checksum {
		os.Remove(archive.Name())
		return "", errors.Errorf("java archive corrupted: expected sha256 %s, got %s", pkg.Checksum, sum)
	}
	return archive.Name(), nil
}
