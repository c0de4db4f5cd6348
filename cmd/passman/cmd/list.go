package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all services with a stored credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _, err := unlockStore()
		if err != nil {
			return err
		}
		services := v.Services()
		if len(services) == 0 {
			fmt.Println("No passwords stored yet.")
			return nil
		}
		for _, s := range services {
			fmt.Println("-", s)
		}
		return nil
	},
}
