package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List the HDUs in a FITS file",
	Long: `List every Header/Data Unit in a FITS file with its kind, BITPIX,
logical shape and header card count.

Example:
  fitsinfo list m51.fits.gz`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%-5s %-9s %-7s %-16s %s\n", "HDU", "KIND", "BITPIX", "SHAPE", "CARDS")
		for i, h := range f.HDUs() {
			bitpix, _ := h.Header.GetInt("BITPIX")
			fmt.Printf("%-5d %-9s %-7d %-16v %d\n", i, h.Kind(), bitpix, h.Shape(), h.Header.Len())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
