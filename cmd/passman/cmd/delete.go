package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/john1234-oladipo/Secure-Password-Manager/audit"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <service>",
	Short: "Delete the credential for a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, emitter, err := unlockStore()
		if err != nil {
			return err
		}
		if err := v.Delete(args[0]); err != nil {
			return err
		}
		_ = emitter.Emit(audit.New(audit.EventDelete, v.Len()))
		fmt.Println(color.GreenString("Credential for %s deleted.", args[0]))
		return nil
	},
}
