package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/howeyc/gopass"
	"github.com/pkg/errors"

	"github.com/john1234-oladipo/Secure-Password-Manager/audit"
	"github.com/john1234-oladipo/Secure-Password-Manager/vault"
)

// menu is the interactive dispatch layer. Every menu item maps onto one
// store operation. Input and output are injected so the loop can be
// exercised in tests without a terminal.
type menu struct {
	v       *vault.Vault
	emitter audit.EventEmitter
	in      *bufio.Reader
	out     io.Writer

	// readSecret reads a password without echo. Tests replace it.
	readSecret func(prompt string) (string, error)
}

func newMenu(v *vault.Vault, emitter audit.EventEmitter, in io.Reader, out io.Writer) *menu {
	return &menu{
		v:          v,
		emitter:    emitter,
		in:         bufio.NewReader(in),
		out:        out,
		readSecret: terminalSecret,
	}
}

func terminalSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := gopass.GetPasswd()
	if err != nil {
		return "", errors.Wrap(err, "cannot read password")
	}
	return string(pass), nil
}

func (m *menu) run() error {
	fmt.Fprintln(m.out, "=== Secure Password Manager ===")
	for {
		fmt.Fprint(m.out, `
Menu:
1. Add new password
2. Retrieve password
3. Generate strong password
4. List all services
5. Delete password
6. Exit

Enter your choice: `)
		choice, err := m.readLine()
		if err != nil {
			// Input stream closed; treat like exit.
			return nil
		}

		switch choice {
		case "1":
			err = m.add()
		case "2":
			err = m.get()
		case "3":
			err = m.generate()
		case "4":
			m.list()
		case "5":
			err = m.delete()
		case "6":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			fmt.Fprintln(m.out, color.RedString("error: %v", err))
		}
	}
}

func (m *menu) add() error {
	fmt.Fprint(m.out, "Enter service name (e.g., 'google.com'): ")
	service, err := m.readLine()
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, "Enter username/email: ")
	username, err := m.readLine()
	if err != nil {
		return err
	}
	password, err := m.readSecret("Enter password (leave empty to generate): ")
	if err != nil {
		return err
	}
	if password == "" {
		length, err := m.readLength()
		if err != nil {
			return err
		}
		password, err = vault.Generate(length, cfg.Charset())
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Generated password: %s\n", password)
	}

	_, lookupErr := m.v.Get(service)
	replaced := lookupErr == nil

	if err := m.v.Put(service, username, password); err != nil {
		return err
	}
	m.emit(audit.EventPut)

	if replaced {
		fmt.Fprintln(m.out, color.YellowString("Replaced the existing credential for %s.", service))
	} else {
		fmt.Fprintf(m.out, "Password for %s added successfully.\n", service)
	}
	return nil
}

func (m *menu) get() error {
	fmt.Fprint(m.out, "Enter service name: ")
	service, err := m.readLine()
	if err != nil {
		return err
	}
	rec, err := m.v.Get(service)
	if errors.Is(err, vault.ErrNotFound) {
		fmt.Fprintf(m.out, "No password found for %s.\n", service)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "\nService: %s\n", service)
	fmt.Fprintf(m.out, "Username: %s\n", rec.Username)
	fmt.Fprintf(m.out, "Password: %s\n", rec.Password)
	return nil
}

func (m *menu) generate() error {
	length, err := m.readLength()
	if err != nil {
		return err
	}
	password, err := vault.Generate(length, cfg.Charset())
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Generated password: %s\n", password)
	return nil
}

func (m *menu) list() {
	services := m.v.Services()
	if len(services) == 0 {
		fmt.Fprintln(m.out, "No passwords stored yet.")
		return
	}
	fmt.Fprintln(m.out, "\nStored services:")
	for _, s := range services {
		fmt.Fprintf(m.out, "- %s\n", s)
	}
}

func (m *menu) delete() error {
	fmt.Fprint(m.out, "Enter service name to delete: ")
	service, err := m.readLine()
	if err != nil {
		return err
	}
	err = m.v.Delete(service)
	if errors.Is(err, vault.ErrNotFound) {
		fmt.Fprintf(m.out, "No password found for %s.\n", service)
		return nil
	}
	if err != nil {
		return err
	}
	m.emit(audit.EventDelete)
	fmt.Fprintf(m.out, "Password for %s deleted successfully.\n", service)
	return nil
}

func (m *menu) readLine() (string, error) {
	line, err := m.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *menu) readLength() (int, error) {
	fmt.Fprintf(m.out, "Enter password length (default %d): ", cfg.Generator.Length)
	line, err := m.readLine()
	if err != nil {
		return 0, err
	}
	if line == "" {
		return cfg.Generator.Length, nil
	}
	length, err := strconv.Atoi(line)
	if err != nil {
		return 0, errors.Errorf("invalid length %q", line)
	}
	return length, nil
}

func (m *menu) emit(t audit.EventType) {
	if err := m.emitter.Emit(audit.New(t, m.v.Len())); err != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("warning: %v", err))
	}
}
