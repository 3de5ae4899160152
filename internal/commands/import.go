package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	var preview bool
	var noCategorize bool

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import bank statement files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}

				if preview {
					res, err := a.Importer.Preview(ctx, path)
					if err != nil {
						return fmt.Errorf("%s: %w", arg, err)
					}
					fmt.Printf("%s: %s, %d transactions (%d duplicates)\n", arg, res.Source, res.Total, res.Duplicates)
					for _, row := range res.Rows {
						marker := " "
						if row.Duplicate {
							marker = "D"
						}
						fmt.Printf(" %s %s  %10.2f  %s\n", marker, row.Date.Format("2006-01-02"), row.Amount, row.Description)
					}
					continue
				}

				res, err := a.Importer.ImportFile(ctx, path, !noCategorize)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Printf("%s: imported %d, skipped %d duplicates, categorized %d\n", arg, res.Imported, res.Skipped, res.Categorized)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "parse and show transactions without saving")
	cmd.Flags().BoolVar(&noCategorize, "no-categorize", false, "skip automatic categorization")

	return cmd
}
