package transactions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

func validTx() transactions.Transaction {
	return transactions.Transaction{
		ID:              "tx_1",
		SenderPublicKey: "pub",
		Signature:       "sig",
		SerializedBytes: []byte("payload"),
	}
}

func TestDecodeRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		mod  func(tx *transactions.Transaction)
	}{
		{"missing id", func(tx *transactions.Transaction) { tx.ID = "" }},
		{"missing sender", func(tx *transactions.Transaction) { tx.SenderPublicKey = "" }},
		{"missing signature", func(tx *transactions.Transaction) { tx.Signature = "" }},
		{"missing payload", func(tx *transactions.Transaction) { tx.SerializedBytes = nil }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tx := validTx()
			c.mod(&tx)

			_, err := transactions.Decode(tx)
			require.Error(t, err)
			var schemaErr *transactions.SchemaError
			assert.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestDecodeCarriesNonce(t *testing.T) {
	tx := validTx()
	nonce := uint64(7)
	tx.Nonce = &nonce

	decoded, err := transactions.Decode(tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), decoded.Nonce)
}

func TestRefResolvesTypeAndGroup(t *testing.T) {
	tx := validTx()
	tx.Type = 2
	tx.TypeGroup = 5

	assert.Equal(t, transactions.HandlerRef{Type: 2, TypeGroup: 5}, tx.Ref())
}

func TestCanonicalSizeGrowsWithPayload(t *testing.T) {
	small := validTx()
	big := validTx()
	big.SerializedBytes = append(big.SerializedBytes, make([]byte, 500)...)

	assert.Greater(t, big.CanonicalSize(), small.CanonicalSize())
}
