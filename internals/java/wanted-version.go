package java

import (
	"github.com/Masterminds/semver/v3"
)

var modernJava = semver.MustParse("1.18.0")

// WantedMajor returns the java major version for a game version.
// The declared `javaVersion.majorVersion` wins, older descriptors fall back to 8 (17 from 1.18 on).
func WantedMajor(gameVersion string, declared int) int {
	if declared > 0 {
		return declared
	}
	v, err := semver.NewVersion(gameVersion)
	if err != nil {
		// snapshots and mod loader ids. they all declare a version nowadays
		return 8
	}
	if !v.LessThan(modernJava) {
		return 17
	}
	return 8
}
