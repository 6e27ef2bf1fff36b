package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/credentials"
	"github.com/law-makers/jobscout/internal/ui"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the JobJourney API token",
	Long: `The token is sent with every job pushed to the JobJourney app. It is kept in
the OS keyring, or in a private file under the state directory where no
keyring is available.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Save the API token (reads stdin when no argument is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenSet,
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved API token, masked",
	Args:  cobra.NoArgs,
	RunE:  runTokenShow,
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the saved API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetApp(cmd).Credentials.Delete(); err != nil {
			return err
		}
		fmt.Printf("%s Token deleted\n", ui.Success("✓"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd, tokenShowCmd, tokenDeleteCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		fmt.Fprint(os.Stderr, "Token: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = line
	}

	if err := GetApp(cmd).Credentials.Save(token); err != nil {
		return err
	}
	fmt.Printf("%s Token saved\n", ui.Success("✓"))
	return nil
}

func runTokenShow(cmd *cobra.Command, args []string) error {
	token, err := GetApp(cmd).Credentials.Load()
	if errors.Is(err, credentials.ErrNoToken) {
		fmt.Println(ui.Info("No token saved. Use 'jobscout token set'."))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(maskToken(token))
	return nil
}

// maskToken keeps the last four characters of long tokens
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
