package vault

import (
	"crypto/cipher"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CurrentRevision represents the version of the store format.
// The value must be incremented for every change that breaks the
// compatibility with the existing binary format.
const CurrentRevision uint16 = 1

// ErrNotFound is returned by Get and Delete when the service does not
// exist in the store.
var ErrNotFound = errors.New("credential not found")

// ErrAuthentication is returned by Open when the store file cannot be
// decrypted and authenticated: wrong master passphrase, or a tampered or
// truncated file. The store never falls back to partial or empty data.
var ErrAuthentication = errors.New("cannot unlock store: wrong master passphrase or corrupted file")

// A Vault holds the decrypted credential mapping of one store file. It is
// obtained from Open and stays unlocked for the lifetime of the process;
// there is no re-lock operation. A Vault is safe for concurrent use.
type Vault struct {
	path string
	rev  uint16
	salt []byte
	aead cipher.AEAD

	mu      sync.RWMutex
	records map[string]Credential
}

// Open unlocks the store located at the given path with the master
// passphrase.
//
// If the store does not exist, it creates a new empty one at the path,
// protected with the passphrase. If it exists, the file is decrypted and
// authenticated; Open returns ErrAuthentication when that fails, and
// never a partially decrypted or empty mapping.
func Open(path, masterSecret string) (*Vault, error) {
	if masterSecret == "" {
		return nil, errors.New("master passphrase is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return newVault(path, masterSecret)
		}
		return nil, errors.Wrapf(err, "cannot stat store path %q", path)
	}
	return openVault(path, masterSecret)
}

func newVault(path, masterSecret string) (*Vault, error) {
	salt, err := generateSalt()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create new store")
	}
	aead, err := newGCM(deriveKey([]byte(masterSecret), salt))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create new store")
	}
	v := &Vault{
		path:    path,
		rev:     CurrentRevision,
		salt:    salt,
		aead:    aead,
		records: make(map[string]Credential),
	}
	if err := v.save(); err != nil {
		return nil, errors.Wrap(err, "cannot create new store")
	}
	return v, nil
}

func openVault(path, masterSecret string) (*Vault, error) {
	rev, salt, data, err := readStoreFile(path)
	if err != nil {
		return nil, err
	}
	aead, err := newGCM(deriveKey([]byte(masterSecret), salt))
	if err != nil {
		return nil, errors.Wrap(err, "cannot unlock store")
	}
	plaintext, err := open(aead, data)
	if err != nil {
		return nil, ErrAuthentication
	}
	records, err := decodeRecords(plaintext)
	if err != nil {
		// Decryption succeeded but the payload is not a credential
		// mapping. Treat it the same as a tampered file.
		return nil, ErrAuthentication
	}
	return &Vault{
		path:    path,
		rev:     rev,
		salt:    salt,
		aead:    aead,
		records: records,
	}, nil
}

// Put inserts or overwrites the credential for a service and persists the
// store. Overwriting keeps the record ID and creation time of the
// previous entry. The change is rolled back if persisting fails.
func (v *Vault) Put(service, username, password string) error {
	if service == "" {
		return errors.New("service name is empty")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now().UTC()
	rec := Credential{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	prev, existed := v.records[service]
	if existed {
		rec.ID = prev.ID
		rec.CreatedAt = prev.CreatedAt
	}

	v.records[service] = rec
	if err := v.save(); err != nil {
		if existed {
			v.records[service] = prev
		} else {
			delete(v.records, service)
		}
		return errors.Wrap(err, "cannot store credential")
	}
	return nil
}

// Get returns the credential stored for a service. If no credential is
// present, ErrNotFound is returned.
func (v *Vault) Get(service string) (Credential, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	rec, ok := v.records[service]
	if !ok {
		return Credential{}, ErrNotFound
	}
	return rec, nil
}

// Services lists the names of all services with a stored credential,
// sorted for stable display. Ordering is not part of the store contract.
func (v *Vault) Services() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	names := make([]string, 0, len(v.records))
	for name := range v.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored credentials.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.records)
}

// Delete removes the credential for a service and persists the store.
// If the service does not exist, ErrNotFound is returned. The change is
// rolled back if persisting fails.
func (v *Vault) Delete(service string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	prev, ok := v.records[service]
	if !ok {
		return ErrNotFound
	}
	delete(v.records, service)
	if err := v.save(); err != nil {
		v.records[service] = prev
		return errors.Wrap(err, "cannot delete credential")
	}
	return nil
}

// save re-encrypts the full mapping with a fresh nonce and atomically
// replaces the store file. Callers must hold v.mu.
func (v *Vault) save() error {
	plaintext, err := encodeRecords(v.records)
	if err != nil {
		return err
	}
	data, err := seal(v.aead, plaintext)
	if err != nil {
		return err
	}
	return writeStoreFile(v.path, v.rev, v.salt, data)
}
