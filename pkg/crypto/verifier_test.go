package crypto_test

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
	"github.com/dusk-network/tx-admission/pkg/crypto"
)

func newKey(t *testing.T) *btcec.PrivateKey {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return priv
}

func sampleTx(senderHex string) transactions.Transaction {
	return transactions.Transaction{
		ID:              "tx_1",
		SenderPublicKey: senderHex,
		Type:            0,
		TypeGroup:       1,
		Timestamp:       1_700_000_000,
		Fee:             10,
		SerializedBytes: []byte("payload"),
	}
}

func TestHashExcludesIDAndSignature(t *testing.T) {
	v := crypto.NewSecp256k1Verifier()

	a := sampleTx("ff")
	a.Signature = "aa"
	b := a
	b.ID = "tx_2"
	b.Signature = "bb"

	assert.Equal(t, v.Hash(a), v.Hash(b), "hash must not depend on id or signature")
}

func TestHashChangesWithPayload(t *testing.T) {
	v := crypto.NewSecp256k1Verifier()

	a := sampleTx("ff")
	b := a
	b.Fee = 11

	assert.NotEqual(t, v.Hash(a), v.Hash(b))
}

func TestECDSARoundTrip(t *testing.T) {
	v := crypto.NewSecp256k1Verifier()
	priv := newKey(t)
	pubHex := hex.EncodeToString(priv.PubKey().SerializeCompressed())

	tx := sampleTx(pubHex)
	hash := v.Hash(tx)

	sig, err := v.SignECDSA(hash, priv)
	require.NoError(t, err)

	ok, err := v.VerifyECDSA(hash, sig, pubHex)
	require.NoError(t, err)
	assert.True(t, ok)

	// A tampered hash must not verify.
	tampered := append([]byte{}, hash...)
	tampered[0] ^= 0xff
	ok, err = v.VerifyECDSA(tampered, sig, pubHex)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSchnorrRoundTrip(t *testing.T) {
	v := crypto.NewSecp256k1Verifier()
	priv := newKey(t)
	pubHex := hex.EncodeToString(priv.PubKey().SerializeCompressed()[1:])

	tx := sampleTx(pubHex)
	hash := v.Hash(tx)

	sig, err := v.SignSchnorr(hash, priv)
	require.NoError(t, err)

	ok, err := v.VerifySchnorr(hash, sig, pubHex)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyAcceptsRawBytes(t *testing.T) {
	v := crypto.NewSecp256k1Verifier()
	priv := newKey(t)
	pub := priv.PubKey().SerializeCompressed()

	tx := sampleTx(hex.EncodeToString(pub))
	hash := v.Hash(tx)

	sigHex, err := v.SignECDSA(hash, priv)
	require.NoError(t, err)
	sigBytes, err := hex.DecodeString(sigHex)
	require.NoError(t, err)

	ok, err := v.VerifyECDSA(hash, sigBytes, pub)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	v := crypto.NewSecp256k1Verifier()
	priv := newKey(t)
	pubHex := hex.EncodeToString(priv.PubKey().SerializeCompressed())

	tx := sampleTx(pubHex)
	hash := v.Hash(tx)

	ok, err := v.VerifyECDSA(hash, "not-valid-hex-signature!!", pubHex)
	assert.Error(t, err)
	assert.False(t, ok)

	ok, err = v.VerifyECDSA(hash, "aabbcc", pubHex)
	require.NoError(t, err)
	assert.False(t, ok)
}
