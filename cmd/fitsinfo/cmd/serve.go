package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-fits/internal/quicklook"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve a FITS file over HTTP",
	Long: `Start the quicklook HTTP server for one FITS file. JSON endpoints
expose HDU summaries (/hdus), header cards (/hdus/{n}/header), table rows
(/hdus/{n}/table) and image statistics (/hdus/{n}/stats); Prometheus
metrics are exported on /metrics.

Example:
  fitsinfo serve m51.fits --addr :8080`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		server := quicklook.New(f, filepath.Base(args[0]), slog.Default())
		return server.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
