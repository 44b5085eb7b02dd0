package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// headerCmd represents the header command.
var headerCmd = &cobra.Command{
	Use:   "header <file>",
	Short: "Print the header cards of one HDU",
	Long: `Print the 80-character card images of one HDU's header, exactly as
they would appear on the wire (minus the blank padding cards).

Example:
  fitsinfo header m51.fits --hdu 1`,
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

		for _, c := range h.Header.Cards() {
			fmt.Println(c.Record())
		}
		return nil
	},
}

func init() {
	headerCmd.Flags().Int("hdu", 0, "HDU index")
	rootCmd.AddCommand(headerCmd)
}
