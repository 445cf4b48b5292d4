// Package crypto bridges the admission processor to the signing
// primitives it treats as an external collaborator: canonical
// transaction hashing plus ECDSA and Schnorr sign/verify over
// secp256k1.
package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"golang.org/x/crypto/blake2b"

	"github.com/dusk-network/tx-admission/pkg/core/transactions"
)

// Verifier is the signature bridge contract from the design: hash,
// sign and verify under both ECDSA and Schnorr. It is exposed as an
// interface so the processor can be driven by a fake in tests without
// pulling in real secp256k1 math.
type Verifier interface {
	Hash(tx transactions.Transaction) []byte
	SignECDSA(hash []byte, priv *btcec.PrivateKey) (string, error)
	VerifyECDSA(hash []byte, sig, pub any) (bool, error)
	SignSchnorr(hash []byte, priv *btcec.PrivateKey) (string, error)
	VerifySchnorr(hash []byte, sig, pub any) (bool, error)
}

// Secp256k1Verifier is the concrete Verifier used in production: ECDSA
// and BIP340 Schnorr signatures over secp256k1, canonical hashing via
// blake2b-256.
type Secp256k1Verifier struct{}

// NewSecp256k1Verifier constructs the default signature bridge.
func NewSecp256k1Verifier() *Secp256k1Verifier {
	return &Secp256k1Verifier{}
}

// Hash returns the canonical hash of a transaction's signable fields:
// everything except the id and the signature itself, so that signing
// a transaction never needs its own id up front.
func (Secp256k1Verifier) Hash(tx transactions.Transaction) []byte {
	signable := tx
	signable.ID = ""
	signable.Signature = ""

	body, err := signableBytes(signable)
	if err != nil {
		// signableBytes only fails on a struct that can't be
		// marshaled, which Transaction never is.
		panic(fmt.Sprintf("crypto: hash: %v", err))
	}

	sum := blake2b.Sum256(body)
	return sum[:]
}

// SignECDSA produces a deterministic (RFC6979) hex-encoded DER
// signature over hash using priv.
func (Secp256k1Verifier) SignECDSA(hash []byte, priv *btcec.PrivateKey) (string, error) {
	sig := ecdsa.Sign(priv, hash)
	return hex.EncodeToString(sig.Serialize()), nil
}

// VerifyECDSA checks sig against hash and pub. sig and pub each accept
// either a hex string or a raw []byte.
func (Secp256k1Verifier) VerifyECDSA(hash []byte, sig, pub any) (bool, error) {
	sigBytes, err := toBytes(sig)
	if err != nil {
		return false, fmt.Errorf("crypto: ecdsa signature: %w", err)
	}
	pubBytes, err := toBytes(pub)
	if err != nil {
		return false, fmt.Errorf("crypto: ecdsa pubkey: %w", err)
	}

	parsedSig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false, nil
	}
	pubKey, err := btcec.ParsePubKey(pubBytes)
	if err != nil {
		return false, nil
	}

	return parsedSig.Verify(hash, pubKey), nil
}

// SignSchnorr produces a deterministic hex-encoded BIP340 signature
// over hash using priv.
func (Secp256k1Verifier) SignSchnorr(hash []byte, priv *btcec.PrivateKey) (string, error) {
	sig, err := schnorr.Sign(priv, hash)
	if err != nil {
		return "", fmt.Errorf("crypto: schnorr sign: %w", err)
	}
	return hex.EncodeToString(sig.Serialize()), nil
}

// VerifySchnorr checks sig against hash and pub (x-only public key).
// sig and pub each accept either a hex string or a raw []byte.
func (Secp256k1Verifier) VerifySchnorr(hash []byte, sig, pub any) (bool, error) {
	sigBytes, err := toBytes(sig)
	if err != nil {
		return false, fmt.Errorf("crypto: schnorr signature: %w", err)
	}
	pubBytes, err := toBytes(pub)
	if err != nil {
		return false, fmt.Errorf("crypto: schnorr pubkey: %w", err)
	}

	parsedSig, err := schnorr.ParseSignature(sigBytes)
	if err != nil {
		return false, nil
	}
	pubKey, err := schnorr.ParsePubKey(pubBytes)
	if err != nil {
		return false, nil
	}

	return parsedSig.Verify(hash, pubKey), nil
}

// toBytes normalises a hex string or raw []byte into bytes, satisfying
// §4.4's "accept either hex strings or raw byte buffers" requirement.
func toBytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case string:
		b, err := hex.DecodeString(val)
		if err != nil {
			return nil, fmt.Errorf("not valid hex: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported representation %T", v)
	}
}
