package logparser

import "regexp"

// Kind is the meaning of a classified line
type Kind uint8

const (
	// Unmatched lines match no pattern
	Unmatched Kind = iota
	// GameStarted is printed once the game window is up
	GameStarted
	// GameCrashed is printed when a crash report was written
	GameCrashed
	// InstallSucceeded is printed by mod loader installers
	InstallSucceeded
	// InstallFailed is printed by mod loader installers
	InstallFailed
)

func (k Kind) String() string {
	switch k {
	case GameStarted:
		return "game-started"
	case GameCrashed:
		return "game-crashed"
	case InstallSucceeded:
		return "install-succeeded"
	case InstallFailed:
		return "install-failed"
	}
	return "unmatched"
}

// Pattern maps a regex to a Kind
type Pattern struct {
	Regex *regexp.Regexp
	Kind  Kind
}

// Table is an ordered list of patterns. The first match wins
type Table []Pattern

// Classify returns the kind of the first pattern matching line
func (t Table) Classify(line string) Kind {
	for _, p := range t {
		if p.Regex.MatchString(line) {
			return p.Kind
		}
	}
	return Unmatched
}

// GameTable classifies client output
var GameTable = Table{
	{regexp.MustCompile(`Setting user: `), GameStarted},
	{regexp.MustCompile(`(?:LWJGL Version|Backend library): `), GameStarted},
	{regexp.MustCompile(`#@!@# Game crashed! Crash report saved to: #@!@#`), GameCrashed},
	{regexp.MustCompile(`This crash report has been saved to: `), GameCrashed},
	{regexp.MustCompile(`^---- Minecraft Crash Report ----`), GameCrashed},
}

// ForgeInstallerTable classifies forge installer output
var ForgeInstallerTable = Table{
	{regexp.MustCompile(`The client installed successfully`), InstallSucceeded},
	{regexp.MustCompile(`Successfully installed client into launcher`), InstallSucceeded},
	{regexp.MustCompile(`(?i)there was an error during installation`), InstallFailed},
	{regexp.MustCompile(`(?i)failed to .* (?:download|install)`), InstallFailed},
}
