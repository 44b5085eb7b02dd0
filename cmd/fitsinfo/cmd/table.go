package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// tableCmd represents the table command.
var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Print the rows of a table HDU",
	Long: `Print the decoded rows of a binary table HDU as JSON, one row
object per line, cell values keyed by column name.

Example:
  fitsinfo table catalog.fits --hdu 1 --limit 10`,
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
		rows, ok := h.Rows()
		if !ok {
			return fmt.Errorf("HDU %d is not a table", index)
		}

		if limit, _ := cmd.Flags().GetInt("limit"); limit >= 0 && limit < len(rows) {
			rows = rows[:limit]
		}
		enc := json.NewEncoder(os.Stdout)
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	tableCmd.Flags().Int("hdu", 1, "HDU index")
	tableCmd.Flags().Int("limit", -1, "maximum rows to print (-1 for all)")
	rootCmd.AddCommand(tableCmd)
}
