package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-fits/fits"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fitsinfo",
	Short: "Inspect and serve FITS files",
	Long: `fitsinfo decodes FITS files (optionally gzip/zlib compressed) and
prints or serves their contents: HDU listings, header cards, binary table
rows and image statistics.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// loadFile decodes the FITS file at path with codec logging wired to the
// process logger.
func loadFile(path string) (*fits.File, error) {
	return fits.ReadFile(path, fits.WithLogger(slog.Default()))
}
