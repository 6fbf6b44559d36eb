package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/minepkg/minelaunch/internals/autocomplete"
	"github.com/minepkg/minelaunch/internals/instances"
	"github.com/minepkg/minelaunch/internals/mojang"
)

// completeVersion completes the first argument with versions of the version manifest
func completeVersion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	l, err := newLayout()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	completer := &autocomplete.AutoCompleter{Client: mojang.NewClient(newHTTPClient()), Layout: l}
	return completer.Complete(toComplete)
}

// completeInstance completes the first argument with instance names
func completeInstance(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	l, err := newLayout()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, _ := instances.NewManager(l).List()

	matches := []string{}
	for _, name := range names {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
