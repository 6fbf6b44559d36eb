package launcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	archiver "github.com/mholt/archiver/v3"
	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/layout"
	"github.com/minepkg/minelaunch/internals/minecraft"
)

// ExtractNatives unpacks all native libraries into the natives directory of the installation
func (a *Assembler) ExtractNatives(inst *minecraft.ResolvedInstallation) error {
	target := a.Layout.NativesDir(inst.ID)
	if err := os.MkdirAll(target, os.ModePerm); err != nil {
		return err
	}

	for _, lib := range inst.NativeLibraries() {
		jar := a.Layout.LibraryPath(lib.Download.Path)
		if !layout.Contains(a.Layout.LibrariesDir(), jar) {
			return errors.Errorf("native %s is outside of the libraries directory", lib.Name)
		}
		if err := extractNative(jar, target, lib.ExtractExclude); err != nil {
			return errors.Wrapf(err, "could not extract %s", lib.Name)
		}
	}
	return nil
}

// CleanNatives removes the natives directory
func (a *Assembler) CleanNatives(inst *minecraft.ResolvedInstallation) error {
	return os.RemoveAll(a.Layout.NativesDir(inst.ID))
}

func extractNative(jar string, target string, exclude []string) error {
	z := archiver.NewZip()
	return z.Walk(jar, func(f archiver.File) error {
		if f.IsDir() {
			return nil
		}
		header, ok := f.Header.(zip.FileHeader)
		if !ok {
			return nil
		}
		name := header.Name
		for _, prefix := range exclude {
			if strings.HasPrefix(name, prefix) {
				return nil
			}
		}

		dest := filepath.Join(target, filepath.FromSlash(name))
		if !strings.HasPrefix(dest, filepath.Clean(target)+string(os.PathSeparator)) {
			return errors.Errorf("illegal path %s in %s", name, jar)
		}
		if err := os.MkdirAll(filepath.Dir(dest), os.ModePerm); err != nil {
			return err
		}

		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, f)
		return err
	})
}
