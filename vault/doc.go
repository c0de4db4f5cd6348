/*
Package vault stores service credentials (username/password pairs) in an
encrypted file on disk, gated by a master passphrase.


Encryption

The data are encrypted using AES-256 and the GCM (Galois/Counter Mode)
mode. The encryption key is derived from the master passphrase using the
PBKDF2 algorithm (SHA-256, 20000 iterations) with a random salt generated
when the store is first created.


Binary Format

The store file uses the following fixed binary format:

   2 bytes for the revision stored as an unsigned int on 16bits encoded
   in little endian

   32 bytes for the salt used by the key derivation algorithm (PBKDF2);
   the salt is not a secret

   All other bytes hold the encrypted payload. The first 12 bytes are the
   nonce required by the AES-GCM cipher, freshly generated on every
   write; the rest is the ciphertext and authentication tag.

The payload, before encryption, is the credential mapping encoded as a
canonical CBOR map of service name to record. At rest the file never
contains a plaintext service name, username, password, or the master
passphrase.

A file that fails GCM authentication — wrong passphrase, tampering,
truncation — is rejected outright; the store never degrades to partial
or empty data. Every mutation atomically rewrites the whole file (write
to a temporary file, then rename), so a crash mid-write leaves the
previous version intact.


Limitation

The store rewrites the full mapping on every mutation and is not meant
for large amounts of data. It defines no inter-process locking: two
processes writing the same store file race, last writer wins.


Security

All the security relies on the master passphrase. It is therefore highly
recommended to use a strong passphrase, preferably generated with a
strong generator such as Generate.
*/
package vault
