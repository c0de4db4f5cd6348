package vault

import (
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Credential is a stored username/password pair for one service.
type Credential struct {
	ID        string    `cbor:"id"`
	Username  string    `cbor:"username"`
	Password  string    `cbor:"password"`
	CreatedAt time.Time `cbor:"created_at"`
	UpdatedAt time.Time `cbor:"updated_at"`
}

// encMode produces a canonical encoding so that the same mapping always
// serializes to the same bytes.
var encMode cbor.EncMode

func init() {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em
}

func encodeRecords(records map[string]Credential) ([]byte, error) {
	b, err := encMode.Marshal(records)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode records")
	}
	return b, nil
}

func decodeRecords(b []byte) (map[string]Credential, error) {
	records := make(map[string]Credential)
	if err := cbor.Unmarshal(b, &records); err != nil {
		return nil, errors.Wrap(err, "cannot decode records")
	}
	return records, nil
}
