package downloadmgr

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// hashChunkSize is the read size used while hashing files
const hashChunkSize = 32 * 1024

// Sha1File returns the hex encoded sha1 of the file at path
func Sha1File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return sha1Reader(f)
}

func sha1Reader(r io.Reader) (string, error) {
	hasher := sha1.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// NeedsDownload reports if the planned file is missing, unreadable or has the wrong hash.
// Existing files without a known hash are trusted.
func NeedsDownload(f PlannedFile) bool {
	file, err := os.Open(f.Target)
	if err != nil {
		return true
	}
	defer file.Close()

	if f.Sha1 == "" {
		return false
	}
	sum, err := sha1Reader(file)
	if err != nil {
		return true
	}
	return !strings.EqualFold(sum, f.Sha1)
}

// VerifyFile checks the sha1 of the file at target. The file is removed if it does not match
func VerifyFile(target string, expected string) error {
	actual, err := Sha1File(target)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actual, expected) {
		os.Remove(target)
		return &InvalidShaError{FileName: target, ExpectedSha: expected, ActualSha: actual}
	}
	return nil
}
