// Package transactions holds the wire-level transaction data the
// admission processor operates on, before and after decoding.
package transactions

import (
	"encoding/json"
	"fmt"
)

// Type identifies a transaction's business-rule family within a TypeGroup.
type Type uint16

// TypeGroup partitions the Type namespace, allowing independently
// versioned transaction families to share the same registry.
type TypeGroup uint32

// Transaction is the opaque payload received at the ingress boundary,
// as described in the data model: an undecoded candidate transaction.
type Transaction struct {
	ID              string    `json:"id"`
	SenderPublicKey string    `json:"senderPublicKey"`
	Type            Type      `json:"type"`
	TypeGroup       TypeGroup `json:"typeGroup"`
	Network         *uint8    `json:"network,omitempty"`
	Timestamp       uint32    `json:"timestamp"`
	Fee             uint64    `json:"fee"`
	Nonce           *uint64   `json:"nonce,omitempty"`
	Signature       string    `json:"signature"`
	CoSignatures    []string  `json:"coSignatures,omitempty"`
	SerializedBytes []byte    `json:"serializedBytes"`
}

// CanonicalSize returns the deterministic byte count used to enforce
// maxTransactionBytes. It reproduces the source system's textual-JSON
// length so rejection parity is preserved (see design notes), while
// giving the behaviour a name instead of an inline json.Marshal call
// at every call site.
func (t Transaction) CanonicalSize() int {
	b, err := json.Marshal(t)
	if err != nil {
		// Transaction is a plain data struct; Marshal only fails on
		// unsupported types, which this struct does not contain.
		panic(fmt.Sprintf("transactions: canonical size marshal: %v", err))
	}
	return len(b)
}

// HandlerRef is the registry key a Transaction resolves to: a type
// within a type group.
type HandlerRef struct {
	Type      Type
	TypeGroup TypeGroup
}

// Ref returns the HandlerRef this transaction resolves through.
func (t Transaction) Ref() HandlerRef {
	return HandlerRef{Type: t.Type, TypeGroup: t.TypeGroup}
}

// SchemaError indicates the transaction failed structural/schema
// validation during decode; it maps to ERR_TRANSACTION_SCHEMA.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("transaction schema invalid: %s", e.Reason)
}

// Decoded is a Transaction that has passed schema validation, with its
// optional nonce resolved (zero when absent). It carries no handler:
// the handler is resolved separately through handlers.Registry.
type Decoded struct {
	Data  Transaction
	Nonce uint64
}

// Decode rebuilds a typed transaction from the raw wire form. This
// mirrors the "decode(data) -> Transaction | SchemaError" boundary
// from the design: out of scope for deep wire parsing, but the
// admission processor needs a concrete decode step to drive the
// schema-error/unknown-error split in the per-transaction filter.
func Decode(t Transaction) (Decoded, error) {
	if t.ID == "" {
		return Decoded{}, &SchemaError{Reason: "missing id"}
	}
	if t.SenderPublicKey == "" {
		return Decoded{}, &SchemaError{Reason: "missing senderPublicKey"}
	}
	if t.Signature == "" {
		return Decoded{}, &SchemaError{Reason: "missing signature"}
	}
	if len(t.SerializedBytes) == 0 {
		return Decoded{}, &SchemaError{Reason: "empty serialized payload"}
	}

	var nonce uint64
	if t.Nonce != nil {
		nonce = *t.Nonce
	}

	return Decoded{Data: t, Nonce: nonce}, nil
}
