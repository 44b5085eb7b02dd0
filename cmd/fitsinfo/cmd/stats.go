package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Print image statistics for one HDU",
	Long: `Compute minimum, maximum, mean and standard deviation over an image
HDU's pixels, plus the suggested linear display-stretch limits.

Example:
  fitsinfo stats m51.fits --hdu 0 --nsigma 2.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}
		index, _ := cmd.Flags().GetInt("hdu")
		h := f.HDU(index)
		if h == nil {
			return fmt.Errorf("no HDU %d (file has %d)", index, f.NumHDUs())
		}
		stats, ok := h.Stats()
		if !ok {
			return fmt.Errorf("HDU %d has no image data", index)
		}

		nsigma, _ := cmd.Flags().GetFloat64("nsigma")
		low, high := stats.DisplayRange(nsigma)
		fmt.Printf("pixels:  %d\n", stats.N)
		fmt.Printf("min:     %g\n", stats.Min)
		fmt.Printf("max:     %g\n", stats.Max)
		fmt.Printf("mean:    %g\n", stats.Mean)
		fmt.Printf("stddev:  %g\n", stats.StdDev)
		fmt.Printf("stretch: [%g, %g]\n", low, high)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("hdu", 0, "HDU index")
	statsCmd.Flags().Float64("nsigma", 3, "stretch width in standard deviations")
	rootCmd.AddCommand(statsCmd)
}
