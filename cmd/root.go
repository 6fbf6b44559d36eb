package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/minepkg/minelaunch/cmd/config"
	"github.com/minepkg/minelaunch/internals/cmdlog"
	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/ownhttp"
)

var (
	// Version is set by main
	Version = "dev"
	// Commit is set by main
	Commit string
)

// TODO: this logger should not be global
var logger *cmdlog.Logger = cmdlog.New()

var (
	cfgFile       string
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minelaunch",
	Short: "Install and launch Minecraft from the command line",
	Long:  "Installs Minecraft versions (optionally with Fabric, Quilt or Forge) and launches them",

	Example: `
  minelaunch versions
  minelaunch install 1.20.1 --loader fabric
  minelaunch instances create survival -m 1.20.1
  minelaunch launch survival`,
}

var completionCmd = &cobra.Command{
	Use:   "completion",
	Args:  cobra.MaximumNArgs(1),
	Short: "Output shell completion code for bash",
	Long: `To load completion run

. <(minelaunch completion)

You can add that line to your ~/.bashrc or ~/.profile to
persist completion in your shell.
`,
	Run: func(cmd *cobra.Command, args []string) {
		rootCmd.GenBashCompletion(os.Stdout)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		commands.Render(os.Stdout, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.minelaunch.toml)")
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print diagnostic messages")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "never prompt and disable the progress bar")
	viper.BindPFlag("verboseLogging", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("nonInteractive", rootCmd.PersistentFlags().Lookup("non-interactive"))

	viper.SetDefault("download.concurrency", 64)
	viper.SetDefault("download.maxRate", 0)
	viper.SetDefault("download.requestsPerSecond", 0)

	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(config.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		cmdlog.DisableColor()
		commands.EmojiEnabled = false
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".minelaunch" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".minelaunch")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("MINELAUNCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); err != nil && !notFound {
		logger.Warn("Could not read config file: " + err.Error())
	}

	if !viper.GetBool("verboseLogging") {
		log.SetOutput(io.Discard)
	} else if used := viper.ConfigFileUsed(); used != "" {
		log.Printf("[INFO] using config file %s", filepath.Clean(used))
	}
	ownhttp.UserAgent = "minelaunch/" + Version
}
