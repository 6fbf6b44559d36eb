package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"

	"github.com/minepkg/minelaunch/internals/auth"
	"github.com/minepkg/minelaunch/internals/commands"
	"github.com/minepkg/minelaunch/internals/utils"
)

func init() {
	loginCmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"signin"},
		Short:   "Stores the credentials the game is launched with",
	}

	offline := commands.New(&cobra.Command{
		Use:   "offline [name]",
		Short: "Play without an account. Servers in online mode will reject you",
		Args:  cobra.MaximumNArgs(1),
	}, commands.RunnerFunc(loginOffline))

	token := &tokenRunner{}
	tokenCmd := commands.New(&cobra.Command{
		Use:   "token",
		Short: "Use a Minecraft access token obtained by another launcher",
		Args:  cobra.NoArgs,
	}, token)
	tokenCmd.Flags().StringVar(&token.name, "name", "", "Player name")
	tokenCmd.Flags().StringVar(&token.uuid, "uuid", "", "Player uuid")
	tokenCmd.Flags().StringVar(&token.token, "token", "", "Access token")
	tokenCmd.Flags().StringVar(&token.xuid, "xuid", "", "Xbox user id (optional)")
	tokenCmd.Flags().DurationVar(&token.expiresIn, "expires-in", 0, "Lifetime of the token (eg. 24h). 0 never expires")

	logout := commands.New(&cobra.Command{
		Use:   "logout",
		Short: "Removes the stored credentials",
		Args:  cobra.NoArgs,
	}, commands.RunnerFunc(logoutRun))

	loginCmd.AddCommand(offline.Command, tokenCmd.Command)
	rootCmd.AddCommand(loginCmd, logout.Command)
}

func credentialStore() (*auth.Store, error) {
	l, err := newLayout()
	if err != nil {
		return nil, err
	}
	return auth.NewStore(l.DataDir), nil
}

func loginOffline(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		var err error
		if name, err = prompt("Player name", false); err != nil {
			return err
		}
	}

	store, err := credentialStore()
	if err != nil {
		return err
	}
	provider := auth.NewOffline(name)
	if err := store.Save("offline", provider); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Playing offline as %s (%s)", name, auth.OfflineUUID(name)))
	return nil
}

type tokenRunner struct {
	name      string
	uuid      string
	token     string
	xuid      string
	expiresIn time.Duration
}

func (t *tokenRunner) RunE(cmd *cobra.Command, args []string) error {
	var err error
	if t.name == "" {
		if t.name, err = prompt("Player name", false); err != nil {
			return err
		}
	}
	if t.uuid == "" {
		if t.uuid, err = prompt("Player uuid", false); err != nil {
			return err
		}
	}
	if t.token == "" {
		if t.token, err = prompt("Access token", true); err != nil {
			return err
		}
	}

	provider := &auth.Token{
		Token:      &oauth2.Token{AccessToken: t.token, TokenType: "Bearer"},
		PlayerName: t.name,
		UUID:       t.uuid,
		XUID:       t.xuid,
	}
	if t.expiresIn > 0 {
		provider.Token.Expiry = time.Now().Add(t.expiresIn)
	}

	store, err := credentialStore()
	if err != nil {
		return err
	}
	if err := store.Save("token", provider); err != nil {
		return err
	}
	logger.Info("Stored the access token of " + t.name)
	return nil
}

func logoutRun(cmd *cobra.Command, args []string) error {
	if !viper.GetBool("nonInteractive") {
		confirmed, err := utils.BoolPrompt(&promptui.Prompt{Label: "Remove the stored credentials"})
		if err != nil || !confirmed {
			return err
		}
	}

	store, err := credentialStore()
	if err != nil {
		return err
	}
	if err := store.Delete(); err != nil {
		return err
	}
	logger.Info("Removed the stored credentials")
	return nil
}

func prompt(label string, secret bool) (string, error) {
	if viper.GetBool("nonInteractive") {
		return "", fmt.Errorf("%s is required", label)
	}
	p := promptui.Prompt{
		Label:    label,
		Validate: basicValidation,
	}
	if secret {
		p.Mask = '■'
	}
	return utils.StringPrompt(&p)
}

func basicValidation(input string) error {
	if len(input) == 0 {
		return errors.New("You have to enter something …")
	}
	return nil
}
