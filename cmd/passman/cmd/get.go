package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <service>",
	Short: "Retrieve the credential for a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _, err := unlockStore()
		if err != nil {
			return err
		}
		rec, err := v.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Service:  %s\n", args[0])
		fmt.Printf("Username: %s\n", rec.Username)
		fmt.Printf("Password: %s\n", rec.Password)
		return nil
	},
}
