package cryptox

import (
	"testing"

	"github.com/notesphere/cli/internal/common"
	"github.com/stretchr/testify/require"
)

type record struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

func TestSealOpenRecord_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	in := record{Token: "tok-123", Name: "alice"}

	ct, nonce, err := SealRecord(in, key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)
	require.NotEmpty(t, ct)

	var out record
	require.NoError(t, OpenRecord(ct, nonce, key, &out))
	require.Equal(t, in, out)
}

func TestOpenRecord_WrongKeyFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	ct, nonce, err := SealRecord(record{Token: "t"}, key)
	require.NoError(t, err)

	other := common.GenerateRandByteArray(32)
	var out record
	require.Error(t, OpenRecord(ct, nonce, other, &out))
}

func TestOpenRecord_TamperedCiphertextFails(t *testing.T) {
	key := common.GenerateRandByteArray(32)
	ct, nonce, err := SealRecord(record{Token: "t"}, key)
	require.NoError(t, err)

	ct[0] ^= 0xff
	var out record
	require.Error(t, OpenRecord(ct, nonce, key, &out))
}

func TestDeriveKey_DeterministicAndSaltSensitive(t *testing.T) {
	secret := []byte("device-secret")
	salt1 := []byte("salt-one-salt-one")
	salt2 := []byte("salt-two-salt-two")

	a := DeriveKey(secret, salt1)
	b := DeriveKey(secret, salt1)
	c := DeriveKey(secret, salt2)

	require.Len(t, a, 32)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}
