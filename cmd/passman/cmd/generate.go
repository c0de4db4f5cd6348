package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/john1234-oladipo/Secure-Password-Manager/vault"
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("length", "l", 0, "password length (default from config)")
	generateCmd.Flags().Bool("no-symbols", false, "exclude symbol characters")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password without storing it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		length, _ := cmd.Flags().GetInt("length")
		if length == 0 {
			length = cfg.Generator.Length
		}
		classes := cfg.Charset()
		if noSymbols, _ := cmd.Flags().GetBool("no-symbols"); noSymbols {
			classes &^= vault.Symbols
		}
		password, err := vault.Generate(length, classes)
		if err != nil {
			return err
		}
		fmt.Println(password)
		return nil
	},
}
