package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/howeyc/gopass"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/john1234-oladipo/Secure-Password-Manager/audit"
	"github.com/john1234-oladipo/Secure-Password-Manager/vault"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <service> [username]",
	Short: "Store a credential for a service",
	Long: `Store a username/password pair for a service. The username is prompted
for when not given as an argument. The password is always prompted for
without echo; leave it empty to generate one with the configured
generator defaults.

Adding a service that already exists silently replaces its credential;
a notice is printed so the overwrite is visible.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		service := args[0]

		v, emitter, err := unlockStore()
		if err != nil {
			return err
		}

		var username string
		if len(args) == 2 {
			username = args[1]
		} else {
			fmt.Fprint(os.Stderr, "Username: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return errors.Wrap(err, "cannot read username")
			}
			username = strings.TrimSpace(line)
		}

		fmt.Fprint(os.Stderr, "Password (leave empty to generate): ")
		pass, err := gopass.GetPasswd()
		if err != nil {
			return errors.Wrap(err, "cannot read password")
		}
		password := string(pass)
		generated := false
		if password == "" {
			password, err = vault.Generate(cfg.Generator.Length, cfg.Charset())
			if err != nil {
				return err
			}
			generated = true
		}

		_, err = v.Get(service)
		replaced := err == nil

		if err := v.Put(service, username, password); err != nil {
			return err
		}
		_ = emitter.Emit(audit.New(audit.EventPut, v.Len()))

		if generated {
			fmt.Printf("Generated password: %s\n", password)
		}
		if replaced {
			fmt.Println(color.YellowString("Replaced the existing credential for %s.", service))
		} else {
			fmt.Println(color.GreenString("Credential for %s added.", service))
		}
		return nil
	},
}
