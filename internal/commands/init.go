package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and seed default categories and rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cats, err := a.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("database ready at %s (%d categories)\n", a.Config.Database.Path, len(cats))
			return nil
		},
	}
}
