package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const keySize = 32

const (
	saltSize   = 32
	pbkdf2Iter = 20000
)

// standard GCM nonce size
const nonceSize = 12

// encryptedData is the sealed payload as stored on disk: the GCM nonce
// followed by the ciphertext and authentication tag.
type encryptedData []byte

func newEncryptedData(nonce, ciphertext []byte) encryptedData {
	data := make(encryptedData, len(nonce)+len(ciphertext))
	copy(data[:len(nonce)], nonce)
	copy(data[len(nonce):], ciphertext)
	return data
}

func (data encryptedData) nonce() []byte {
	if len(data) < nonceSize+1 {
		return []byte{}
	}
	return data[0:nonceSize]
}

func (data encryptedData) ciphertext() []byte {
	if len(data) < nonceSize+1 {
		return []byte{}
	}
	return data[nonceSize:]
}

func deriveKey(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, pbkdf2Iter, keySize, sha256.New)
}

func generateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "cannot generate salt")
	}
	return salt, nil
}

func generateNonce(size int) ([]byte, error) {
	nonce := make([]byte, size)
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "cannot generate nonce")
	}
	return nonce, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create new aes block cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create new gcm cipher")
	}
	return gcm, nil
}

// seal encrypts plaintext with a freshly generated nonce. The nonce is
// never reused across calls.
func seal(aead cipher.AEAD, plaintext []byte) (encryptedData, error) {
	nonce, err := generateNonce(aead.NonceSize())
	if err != nil {
		return nil, errors.Wrap(err, "cannot encrypt plaintext")
	}
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return newEncryptedData(nonce, ciphertext), nil
}

// open decrypts and authenticates data. It fails for any data that was
// not sealed with the same key, including tampered or truncated blobs.
func open(aead cipher.AEAD, data encryptedData) ([]byte, error) {
	plaintext, err := aead.Open(nil, data.nonce(), data.ciphertext(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot decrypt ciphertext")
	}
	return plaintext, nil
}
