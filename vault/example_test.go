package vault_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/john1234-oladipo/Secure-Password-Manager/vault"
)

func Example() {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("vault-example-%d.enc", os.Getpid()))
	defer os.Remove(path)

	passphrase := "strong_passphrase"

	// Unlock the store. Since it does not exist yet, it is created empty.
	v, err := vault.Open(path, passphrase)
	if err != nil {
		log.Print("[error] ", err)
		return
	}

	// Store a credential.
	if err := v.Put("github.com", "alice", "my_very_secret_password"); err != nil {
		log.Print("[error] ", err)
		return
	}

	fmt.Println("Services:", v.Services())

	// Retrieve it.
	rec, err := v.Get("github.com")
	if err != nil {
		log.Print("[error] ", err)
		return
	}
	fmt.Println("Username:", rec.Username)
	fmt.Println("Password:", rec.Password)

	// Delete it again.
	if err := v.Delete("github.com"); err != nil {
		log.Print("[error] ", err)
		return
	}
	fmt.Println("Services:", v.Services())

	// Output:
	// Services: [github.com]
	// Username: alice
	// Password: my_very_secret_password
	// Services: []
}
