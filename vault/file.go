package vault

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	revSize    = 2
	headerSize = revSize + saltSize
)

// readStoreFile loads and splits a store file into its revision, salt and
// encrypted payload. A file too short to hold the header or a sealed
// payload is reported as corrupted so that callers can fail closed.
func readStoreFile(path string) (rev uint16, salt []byte, data encryptedData, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, nil, errors.Wrapf(err, "cannot read store file %q", path)
	}
	if len(raw) < headerSize+nonceSize+1 {
		return 0, nil, nil, errors.Wrap(ErrAuthentication, "store file is truncated")
	}
	rev = binary.LittleEndian.Uint16(raw[:revSize])
	salt = raw[revSize:headerSize]
	data = encryptedData(raw[headerSize:])
	return rev, salt, data, nil
}

// writeStoreFile atomically replaces the store file: the full content is
// written to a temporary file in the same directory, synced, and renamed
// over the target. A crash mid-write leaves the previous file intact.
func writeStoreFile(path string, rev uint16, salt []byte, data encryptedData) error {
	if len(salt) != saltSize {
		return errors.Errorf("invalid salt length %d; want %d", len(salt), saltSize)
	}

	buf := make([]byte, 0, headerSize+len(data))
	buf = binary.LittleEndian.AppendUint16(buf, rev)
	buf = append(buf, salt...)
	buf = append(buf, data...)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "cannot create temporary store file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "cannot set store file permissions")
	}
	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "cannot write store file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "cannot sync store file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "cannot close store file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "cannot replace store file")
	}
	return nil
}
