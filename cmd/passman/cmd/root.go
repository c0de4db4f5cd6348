// Package cmd implements the passman CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/howeyc/gopass"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/john1234-oladipo/Secure-Password-Manager/audit"
	"github.com/john1234-oladipo/Secure-Password-Manager/config"
	"github.com/john1234-oladipo/Secure-Password-Manager/vault"
)

// Exit codes reported by the CLI.
const (
	ExitSuccess  = 0 // Operation completed successfully
	ExitGeneral  = 1 // Unknown/unhandled error
	ExitAuth     = 2 // Wrong master passphrase or corrupted store
	ExitNotFound = 4 // Requested service doesn't exist
)

var (
	// Global flags
	storePath  string
	configPath string
	auditPath  string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "passman",
	Short: "Local encrypted password manager",
	Long: `passman stores service credentials (username/password pairs) in a single
file encrypted with a master passphrase (AES-256-GCM, PBKDF2 key
derivation). The passphrase is always prompted for interactively; it is
never accepted as a flag or environment variable.

Run passman without arguments for the interactive menu, or use the
subcommands directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, emitter, err := unlockStore()
		if err != nil {
			return err
		}
		m := newMenu(v, emitter, os.Stdin, os.Stdout)
		return m.run()
	},
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVarP(&storePath, "file", "f", "", "path to the encrypted store (default from config, else passwords.enc)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&auditPath, "audit-log", "", "append audit events (never secrets) to this file")
}

func loadConfig() {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			cfg = config.Default()
			return
		}
		path = p
	}
	c, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("warning: %v", err))
		cfg = config.Default()
		return
	}
	cfg = c
}

// Execute runs the root command and exits with the code matching the
// error kind.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, vault.ErrAuthentication):
		return ExitAuth
	case errors.Is(err, vault.ErrNotFound):
		return ExitNotFound
	}
	return ExitGeneral
}

// promptPassphrase reads the master passphrase from the terminal without
// echo. An empty passphrase is rejected.
func promptPassphrase() (string, error) {
	fmt.Fprint(os.Stderr, "Master passphrase: ")
	pass, err := gopass.GetPasswd()
	if err != nil {
		return "", errors.Wrap(err, "cannot read master passphrase")
	}
	if len(pass) == 0 {
		return "", errors.New("master passphrase cannot be empty")
	}
	return string(pass), nil
}

// unlockStore prompts for the master passphrase and unlocks the store,
// emitting the matching audit event.
func unlockStore() (*vault.Vault, audit.EventEmitter, error) {
	emitter := newEmitter()

	secret, err := promptPassphrase()
	if err != nil {
		return nil, nil, err
	}

	path := storePath
	if path == "" {
		path = cfg.Store
	}

	v, err := vault.Open(path, secret)
	if err != nil {
		_ = emitter.Emit(audit.New(audit.EventUnlockFailed, 0))
		return nil, nil, err
	}
	_ = emitter.Emit(audit.New(audit.EventUnlock, v.Len()))
	return v, emitter, nil
}

func newEmitter() audit.EventEmitter {
	if auditPath == "" {
		return audit.NopEmitter{}
	}
	emitter, err := audit.NewFileEmitter(auditPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("warning: %v", err))
		return audit.NopEmitter{}
	}
	return emitter
}
