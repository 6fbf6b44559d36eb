package cmd

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/minepkg/minelaunch/internals/auth"
	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/downloadmgr"
	"github.com/minepkg/minelaunch/internals/install"
	"github.com/minepkg/minelaunch/internals/instances"
	"github.com/minepkg/minelaunch/internals/minecraft"
	"github.com/minepkg/minelaunch/internals/mojang"
)

// cliError converts known errors into CliErrors with some help for the user
func cliError(err error) error {
	if err == nil {
		return nil
	}

	var (
		missing    *minecraft.MissingAncestorError
		cyclic     *minecraft.CyclicInheritanceError
		incomplete *minecraft.IncompleteInstallationError
		planning   *install.PlanningError
		session    *downloadmgr.SessionFailedError
		tool       *install.ExternalToolError
	)

	switch {
	case errors.As(err, &missing):
		suggestions := []string{"Run `minelaunch versions --all` to see all available versions"}
		if errors.Is(err, mojang.ErrUnknownVersion) {
			suggestions = append(suggestions, "Check your internet connection if the version should exist")
		}
		return &commands.CliError{
			Text:        fmt.Sprintf("Version %s could not be found", missing.ID),
			Code:        "missing-ancestor",
			Suggestions: suggestions,
			Err:         err,
		}
	case errors.As(err, &cyclic):
		return &commands.CliError{
			Text:        err.Error(),
			Code:        "cyclic-inheritance",
			Help:        "A version descriptor inherits from itself. The files in the versions directory are broken",
			Suggestions: []string{"Remove the affected directories in the versions directory and install again"},
			Err:         err,
		}
	case errors.As(err, &incomplete):
		return &commands.CliError{
			Text: err.Error(),
			Code: "incomplete-installation",
			Err:  err,
		}
	case errors.As(err, &planning):
		return &commands.CliError{
			Text:        err.Error(),
			Code:        "planning",
			Suggestions: []string{"The asset index could not be fetched. Check your internet connection"},
			Err:         err,
		}
	case errors.As(err, &session):
		return &commands.CliError{
			Text: fmt.Sprintf("Downloading %s failed", session.File.URL),
			Code: "session-failed",
			Help: session.Err.Error(),
			Suggestions: []string{
				"Try again later",
				"Lower the number of parallel downloads with `minelaunch config set download.concurrency 8`",
			},
			Err: err,
		}
	case errors.As(err, &tool):
		return &commands.CliError{
			Text: err.Error(),
			Code: "external-tool",
			Help: tool.Output,
			Err:  err,
		}
	case errors.Is(err, auth.ErrNoCredentials), errors.Is(err, auth.ErrExpired):
		return &commands.CliError{
			Text:        err.Error(),
			Code:        "credentials",
			Suggestions: []string{"Run `minelaunch login offline <name>` to play offline"},
			Err:         err,
		}
	case errors.Is(err, instances.ErrNoInstance):
		return &commands.CliError{
			Text:        err.Error(),
			Code:        "no-instance",
			Suggestions: []string{"Create it with `minelaunch instances create <name> -m <version>`", "Or launch it with `--minecraft <version>`"},
			Err:         err,
		}
	}
	return err
}
