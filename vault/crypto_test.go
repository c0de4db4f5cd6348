package vault

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	salt, err := generateSalt()
	require.NoError(t, err)
	require.Len(t, salt, saltSize)

	key := deriveKey([]byte("passphrase"), salt)
	assert.Len(t, key, keySize)
	assert.Equal(t, key, deriveKey([]byte("passphrase"), salt), "same inputs, same key")

	otherSalt, err := generateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, key, deriveKey([]byte("passphrase"), otherSalt), "salt must change the key")
	assert.NotEqual(t, key, deriveKey([]byte("other"), salt), "passphrase must change the key")
}

func TestSealOpenRoundTrip(t *testing.T) {
	salt, err := generateSalt()
	require.NoError(t, err)
	aead, err := newGCM(deriveKey([]byte("passphrase"), salt))
	require.NoError(t, err)

	plaintext := []byte("the quick brown fox")
	data, err := seal(aead, plaintext)
	require.NoError(t, err)

	got, err := open(aead, data)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSealUsesFreshNonce(t *testing.T) {
	salt, err := generateSalt()
	require.NoError(t, err)
	aead, err := newGCM(deriveKey([]byte("passphrase"), salt))
	require.NoError(t, err)

	first, err := seal(aead, []byte("payload"))
	require.NoError(t, err)
	second, err := seal(aead, []byte("payload"))
	require.NoError(t, err)

	assert.NotEqual(t, first.nonce(), second.nonce())
	assert.NotEqual(t, []byte(first), []byte(second))
}

func TestOpenWithWrongKeyFails(t *testing.T) {
	salt, err := generateSalt()
	require.NoError(t, err)
	aead, err := newGCM(deriveKey([]byte("passphrase"), salt))
	require.NoError(t, err)

	data, err := seal(aead, []byte("payload"))
	require.NoError(t, err)

	wrong, err := newGCM(deriveKey([]byte("not the passphrase"), salt))
	require.NoError(t, err)
	_, err = open(wrong, data)
	require.Error(t, err)
}

func TestEncodeRecordsIsDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	records := map[string]Credential{
		"github.com": {ID: "id-1", Username: "alice", Password: "pw1", CreatedAt: now, UpdatedAt: now},
		"mail":       {ID: "id-2", Username: "bob", Password: "pw2", CreatedAt: now, UpdatedAt: now},
	}

	first, err := encodeRecords(records)
	require.NoError(t, err)
	second, err := encodeRecords(records)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	decoded, err := decodeRecords(first)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "alice", decoded["github.com"].Username)
	assert.Equal(t, "pw2", decoded["mail"].Password)
	assert.True(t, now.Equal(decoded["github.com"].CreatedAt))
}
