package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/state"
	"github.com/law-makers/jobscout/internal/ui"
	"github.com/law-makers/jobscout/pkg/models"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List job sites and whether they are searched",
	Long: `Lists the supported job sites. Disabled sites are skipped by 'search' and
their pages are not recognized by 'scrape' and 'detail'.`,
	Example: `  # Show site settings
  jobscout sites

  # Stop searching LinkedIn
  jobscout sites disable linkedin`,
	Args: cobra.NoArgs,
	RunE: runSitesList,
}

var sitesEnableCmd = &cobra.Command{
	Use:   "enable <platform>",
	Short: "Enable a job site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSite(cmd, args[0], true)
	},
}

var sitesDisableCmd = &cobra.Command{
	Use:   "disable <platform>",
	Short: "Disable a job site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSite(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
	sitesCmd.AddCommand(sitesEnableCmd, sitesDisableCmd)
}

func runSitesList(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)

	fmt.Printf("\n%s\n", ui.Bold("Job Sites"))
	fmt.Println(ui.Dim(rule))
	for _, p := range a.Registry.Platforms() {
		status := ui.Success("enabled")
		if !a.Registry.Enabled(p) {
			status = ui.Error("disabled")
		}
		fmt.Printf("  %-10s %-9s %s\n", p.ID(), string(p), status)
	}
	fmt.Println()
	return nil
}

func setSite(cmd *cobra.Command, id string, enabled bool) error {
	a := GetApp(cmd)
	p, err := models.ParsePlatform(id)
	if err != nil {
		return err
	}
	if err := state.SetPlatformEnabled(a.Store, p, enabled); err != nil {
		return fmt.Errorf("failed to save site settings: %w", err)
	}
	a.Registry.SetEnabled(p, enabled)

	verb := "enabled"
	if !enabled {
		verb = "disabled"
	}
	fmt.Printf("%s %s %s\n", ui.Success("✓"), string(p), verb)
	return nil
}
