package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategorizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categorize",
		Short: "Categorize stored transactions that have no category",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Categorizer.CategorizeAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("categorized %d transactions\n", n)
			return nil
		},
	}
}
