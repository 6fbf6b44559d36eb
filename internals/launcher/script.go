package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dchest/uniuri"

	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/platform"
)

// Script is a generated launch script
type Script struct {
	Path string
	// Nonce identifies this launch. It is exported as MINELAUNCH_LAUNCH_ID
	Nonce string
}

// WriteScript writes launch.sh (launch.bat on windows) into the cache dir of the instance.
// The script changes into the game directory, runs the pre launch hook, starts java
// (optionally through a wrapper), removes the natives and runs the post exit hook.
func (a *Assembler) WriteScript(instance string, inst *minecraft.ResolvedInstallation, java string, args []string, settings Settings) (*Script, error) {
	dir := a.Layout.InstanceCacheDir(instance)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}

	script := &Script{Nonce: uniuri.New()}
	var content string
	if a.Platform.OSFamily == platform.Windows {
		script.Path = filepath.Join(dir, "launch.bat")
		content = a.batch(inst, java, args, settings, script.Nonce)
	} else {
		script.Path = filepath.Join(dir, "launch.sh")
		content = a.shell(inst, java, args, settings, script.Nonce)
	}

	if err := os.WriteFile(script.Path, []byte(content), 0755); err != nil {
		return nil, err
	}
	return script, nil
}

func (a *Assembler) shell(inst *minecraft.ResolvedInstallation, java string, args []string, settings Settings, nonce string) string {
	b := &strings.Builder{}
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(b, "export MINELAUNCH_LAUNCH_ID=%s\n", nonce)
	fmt.Fprintf(b, "cd %s || exit 1\n", shellQuote(a.gameDir()))
	if settings.PreLaunch != "" {
		fmt.Fprintf(b, "%s || exit 1\n", settings.PreLaunch)
	}

	command := make([]string, 0, len(args)+2)
	if settings.Wrapper != "" {
		command = append(command, settings.Wrapper)
	}
	command = append(command, shellQuote(java))
	for _, arg := range args {
		command = append(command, shellQuote(arg))
	}
	b.WriteString(strings.Join(command, " ") + "\n")
	b.WriteString("status=$?\n")

	fmt.Fprintf(b, "rm -rf %s\n", shellQuote(a.Layout.NativesDir(inst.ID)))
	if settings.PostExit != "" {
		b.WriteString(settings.PostExit + "\n")
	}
	b.WriteString("exit $status\n")
	return b.String()
}

func (a *Assembler) batch(inst *minecraft.ResolvedInstallation, java string, args []string, settings Settings, nonce string) string {
	b := &strings.Builder{}
	b.WriteString("@echo off\r\n")
	fmt.Fprintf(b, "set MINELAUNCH_LAUNCH_ID=%s\r\n", nonce)
	fmt.Fprintf(b, "cd /d %s || exit /b 1\r\n", batchQuote(a.gameDir()))
	if settings.PreLaunch != "" {
		fmt.Fprintf(b, "%s || exit /b 1\r\n", settings.PreLaunch)
	}

	command := make([]string, 0, len(args)+2)
	if settings.Wrapper != "" {
		command = append(command, settings.Wrapper)
	}
	command = append(command, batchQuote(java))
	for _, arg := range args {
		command = append(command, batchQuote(arg))
	}
	b.WriteString(strings.Join(command, " ") + "\r\n")
	b.WriteString("set status=%errorlevel%\r\n")

	fmt.Fprintf(b, "rmdir /s /q %s\r\n", batchQuote(a.Layout.NativesDir(inst.ID)))
	if settings.PostExit != "" {
		b.WriteString(settings.PostExit + "\r\n")
	}
	b.WriteString("exit /b %status%\r\n")
	return b.String()
}

// preQuoted reports if s was quoted during game argument substitution
func preQuoted(s string) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	return !strings.ContainsAny(s[1:len(s)-1], "\"$`\\")
}

// shellQuote wraps s in single quotes if needed
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if preQuoted(s) {
		return s
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]#~{}!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func batchQuote(s string) string {
	if s == "" {
		return `""`
	}
	if preQuoted(s) {
		return s
	}
	if !strings.ContainsAny(s, " \t&|<>^()") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
