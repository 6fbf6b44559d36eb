package commands

import (
	"os"
	"runtime"
)

// EmojiEnabled is switched off by --no-color
var EmojiEnabled = true

var emojiSupport = detectEmojiSupport()

func detectEmojiSupport() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	if runtime.GOOS != "windows" {
		return true
	}
	// plain cmd and powershell set SESSIONNAME, windows terminal does not
	return os.Getenv("SESSIONNAME") == ""
}

// Emoji returns e if the terminal (probably) renders emojis, otherwise ""
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
