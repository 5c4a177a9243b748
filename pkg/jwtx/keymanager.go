package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/aussiebroadwan/clockin/pkg/cryptox"
)

// KeyManager ties the signing key to the KeySet and Verifier built from it.
type KeyManager struct {
	signer   *Signer
	KeySet   *KeySet
	Verifier Verifier
}

// KeyManagerOptions configures NewKeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string

	// Key is the signing key. When nil an ephemeral key is generated and
	// every token becomes invalid on restart.
	Key ed25519.PrivateKey
}

func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	key := opts.Key
	if key == nil {
		var err error
		if _, key, err = ed25519.GenerateKey(rand.Reader); err != nil {
			return nil, fmt.Errorf("jwtx: generate key: %w", err)
		}
	}

	signer, err := NewSigner(keyID(key), key)
	if err != nil {
		return nil, err
	}

	keys := NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add signer: %w", err)
	}

	return &KeyManager{
		signer:   signer,
		KeySet:   keys,
		Verifier: NewVerifier(keys, opts.Issuer, opts.Audience),
	}, nil
}

func (km *KeyManager) Signer() *Signer { return km.signer }

func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }

// keyID derives a stable kid from the public key so a persisted key keeps
// its kid across restarts.
func keyID(key ed25519.PrivateKey) string {
	pub := key.Public().(ed25519.PublicKey)
	return "clockin-" + cryptox.FingerprintToken(string(pub))[:16]
}
