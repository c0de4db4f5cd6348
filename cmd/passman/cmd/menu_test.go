package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john1234-oladipo/Secure-Password-Manager/audit"
	"github.com/john1234-oladipo/Secure-Password-Manager/config"
	"github.com/john1234-oladipo/Secure-Password-Manager/vault"
)

// recordingEmitter captures emitted events for test verification.
type recordingEmitter struct {
	events []audit.Event
}

func (r *recordingEmitter) Emit(ev audit.Event) error {
	r.events = append(r.events, ev)
	return nil
}

func testMenu(t *testing.T, input string, secrets ...string) (*vault.Vault, *recordingEmitter, *bytes.Buffer) {
	t.Helper()
	cfg = config.Default()

	v, err := vault.Open(filepath.Join(t.TempDir(), "passwords.enc"), "Sm0keTest!")
	require.NoError(t, err)

	rec := &recordingEmitter{}
	out := &bytes.Buffer{}
	m := newMenu(v, rec, strings.NewReader(input), out)
	m.readSecret = func(string) (string, error) {
		require.NotEmpty(t, secrets, "menu asked for more secrets than scripted")
		s := secrets[0]
		secrets = secrets[1:]
		return s, nil
	}
	require.NoError(t, m.run())
	return v, rec, out
}

func TestMenuAddListGetDeleteQuit(t *testing.T) {
	input := "1\ngithub.com\nalice\n" + // add
		"4\n" + // list
		"2\ngithub.com\n" + // get
		"5\ngithub.com\n" + // delete
		"6\n" // exit
	v, rec, out := testMenu(t, input, "Tr0ub4dor&3")

	output := out.String()
	assert.Contains(t, output, "Password for github.com added successfully.")
	assert.Contains(t, output, "- github.com")
	assert.Contains(t, output, "Username: alice")
	assert.Contains(t, output, "Password: Tr0ub4dor&3")
	assert.Contains(t, output, "Password for github.com deleted successfully.")
	assert.Contains(t, output, "Goodbye!")

	assert.Equal(t, 0, v.Len())
	require.Len(t, rec.events, 2)
	assert.Equal(t, audit.EventPut, rec.events[0].Type)
	assert.Equal(t, audit.EventDelete, rec.events[1].Type)
}

func TestMenuAddGeneratesEmptyPassword(t *testing.T) {
	input := "1\nmail\nbob\n20\n6\n"
	v, _, out := testMenu(t, input, "") // empty password triggers generation

	assert.Contains(t, out.String(), "Generated password: ")

	stored, err := v.Get("mail")
	require.NoError(t, err)
	assert.Len(t, stored.Password, 20)
}

func TestMenuAddOverwriteNotice(t *testing.T) {
	input := "1\nsvc\nalice\n1\nsvc\nbob\n6\n"
	v, _, out := testMenu(t, input, "first", "second")

	assert.Contains(t, out.String(), "Replaced the existing credential for svc.")
	stored, err := v.Get("svc")
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.Username)
	assert.Equal(t, "second", stored.Password)
}

func TestMenuGenerateDefaultLength(t *testing.T) {
	input := "3\n\n6\n"
	_, _, out := testMenu(t, input)

	output := out.String()
	_, rest, found := strings.Cut(output, "Generated password: ")
	require.True(t, found, "no generated password in output")
	password, _, _ := strings.Cut(rest, "\n")
	assert.Len(t, password, vault.DefaultLength)
}

func TestMenuUnknownServiceIsNotFatal(t *testing.T) {
	input := "2\nmissing\n5\nmissing\n6\n"
	_, rec, out := testMenu(t, input)

	output := out.String()
	assert.Contains(t, output, "No password found for missing.")
	assert.Contains(t, output, "Goodbye!")
	assert.Empty(t, rec.events)
}

func TestMenuInvalidChoice(t *testing.T) {
	input := "42\n6\n"
	_, _, out := testMenu(t, input)
	assert.Contains(t, out.String(), "Invalid choice. Please try again.")
}

func TestMenuEOFActsLikeExit(t *testing.T) {
	_, _, out := testMenu(t, "4\n")
	assert.Contains(t, out.String(), "No passwords stored yet.")
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitAuth, exitCode(vault.ErrAuthentication))
	assert.Equal(t, ExitNotFound, exitCode(vault.ErrNotFound))
	assert.Equal(t, ExitGeneral, exitCode(assert.AnError))
}
