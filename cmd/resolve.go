package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/minecraft"
)

func init() {
	runner := &resolveRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "resolve <version>",
		Short: "Prints the merged version descriptor for this platform",
		Long: `Walks the inheritance chain of a version and prints the result after
all rules were evaluated. Versions that are not installed are fetched.`,
		Args: cobra.ExactArgs(1),
	}, runner)

	cmd.Flags().StringVarP(&runner.output, "output", "o", "json", "Output format (json or yaml)")
	cmd.Flags().BoolVar(&runner.demo, "demo", false, "Enable the is_demo_user feature")
	cmd.Flags().BoolVar(&runner.customResolution, "custom-resolution", false, "Enable the has_custom_resolution feature")

	cmd.ValidArgsFunction = completeVersion
	rootCmd.AddCommand(cmd.Command)
}

type resolveRunner struct {
	output           string
	demo             bool
	customResolution bool
}

func (r *resolveRunner) RunE(cmd *cobra.Command, args []string) error {
	if r.output != "json" && r.output != "yaml" {
		return fmt.Errorf("unknown output format %q", r.output)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	resolver := a.installer.Resolver
	resolver.Features = minecraft.Features{
		"is_demo_user":          r.demo,
		"has_custom_resolution": r.customResolution,
	}
	id, err := a.versionID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	inst, err := resolver.Resolve(cmd.Context(), id)
	if err != nil {
		return cliError(err)
	}

	if r.output == "yaml" {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(inst)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(inst)
}
