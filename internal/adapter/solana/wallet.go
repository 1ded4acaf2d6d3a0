package solana

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/mr-tron/base58"
)

// NewWallet generates an ed25519 keypair encoded the way Solana tooling
// expects: base58 public key, base58 64-byte private key (seed plus public).
func NewWallet() (publicKey, privateKey string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate wallet: %w", err)
	}
	return base58.Encode(pub), base58.Encode(priv), nil
}

func parsePrivateKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}

func parsePublicKey(encoded string) ([32]byte, error) {
	var key [32]byte
	raw, err := base58.Decode(encoded)
	if err != nil {
		return key, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return key, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

func decodeBlockhash(encoded string) ([32]byte, error) {
	var hash [32]byte
	raw, err := base58.Decode(encoded)
	if err != nil {
		return hash, fmt.Errorf("decode blockhash: %w", err)
	}
	if len(raw) != len(hash) {
		return hash, fmt.Errorf("blockhash must be %d bytes, got %d", len(hash), len(raw))
	}
	copy(hash[:], raw)
	return hash, nil
}
