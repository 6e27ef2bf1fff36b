package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/state"
	"github.com/law-makers/jobscout/internal/ui"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show saved state and running scrape flags",
	Long: `Shows the state file, the last search location and the platforms whose
"scraping active" flag is set. A flag left set by a killed process can be
cleared with 'jobscout state clear'.`,
	Args: cobra.NoArgs,
	RunE: runState,
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear every scraping active flag",
	Args:  cobra.NoArgs,
	RunE:  runStateClear,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateClearCmd)
}

func runState(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)

	fmt.Printf("\n%s\n", ui.Bold("State"))
	fmt.Println(ui.Dim(rule))
	fmt.Printf("  %s\n", ui.Field("File:", a.Store.Path()))
	fmt.Printf("  %s\n", ui.Field("Last location:", orDefault(state.LastLocation(a.Store), "(none)")))

	active := state.ActivePlatforms(a.Store)
	if len(active) == 0 {
		fmt.Printf("  %s %s\n", ui.Bold("Scraping:"), ui.Dim("idle"))
	}
	for _, p := range active {
		fmt.Printf("  %s %s\n", ui.Bold("Scraping:"), ui.Info(string(p)))
	}
	fmt.Println()
	return nil
}

func runStateClear(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	cleared := 0
	for _, p := range state.ActivePlatforms(a.Store) {
		n, err := state.ClearPlatform(a.Store, p)
		if err != nil {
			return err
		}
		cleared += n
	}
	fmt.Printf("%s Cleared %d flag(s)\n", ui.Success("✓"), cleared)
	return nil
}
