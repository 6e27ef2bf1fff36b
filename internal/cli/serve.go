package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobscout/internal/api"
	"github.com/law-makers/jobscout/internal/config"
	"github.com/law-makers/jobscout/internal/ui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scrape operations over a local HTTP API",
	Long: `Starts an HTTP server exposing:

- GET  /health
- GET  /api/platforms
- GET  /api/state
- POST /api/scrape    {"url", "platform"}
- POST /api/detail    {"url", "platform"}
- POST /api/sessions  {"url" or "keywords"/"location", "parallel"}`,
	Example: `  # Serve on the default address
  jobscout serve

  # Use a visible browser and another port
  jobscout serve --headless=false --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	orch, err := a.Orchestrator(cmd.Context())
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = a.Config.ListenAddr
	}

	srv := api.NewServer(orch, a.Registry, a.Store, config.MaxParallel)
	fmt.Printf("%s Listening on %s\n", ui.Success("✓"), ui.ColorCyan+"http://"+addr+ui.ColorReset)
	if err := srv.ListenAndServe(cmd.Context(), addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
