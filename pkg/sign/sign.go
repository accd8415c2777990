package sign

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"

	"github.com/zigap/xphere-sdk-go/pkg/enc"
)

const (
	KeySize       = 64
	SignatureSize = 128
)

// ErrInvalidKey is returned for a private or public key that is not 64 hex characters.
var ErrInvalidKey = errors.New("invalid key")

var keyPattern = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)

// KeyPair is an Ed25519 identity in the network's hex form.
type KeyPair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
	Address    string `json:"address"`
}

// NewKeyPair generates a fresh identity.
func NewKeyPair() (*KeyPair, error) {
	priv, err := PrivateKey()
	if err != nil {
		return nil, err
	}
	return KeyPairFromPrivateKey(priv)
}

// KeyPairFromPrivateKey rebuilds the identity of an existing seed.
func KeyPairFromPrivateKey(priv string) (*KeyPair, error) {
	pub, err := PublicKey(priv)
	if err != nil {
		return nil, err
	}
	return &KeyPair{PrivateKey: priv, PublicKey: pub, Address: Address(pub)}, nil
}

// PrivateKey returns a new random 32 byte seed in hex.
func PrivateKey() (string, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("generate seed: %w", err)
	}
	return common.Bytes2Hex(seed), nil
}

// PublicKey derives the public key of a seed.
func PublicKey(priv string) (string, error) {
	key, err := secretKey(priv)
	if err != nil {
		return "", err
	}
	return common.Bytes2Hex(key.Public().(ed25519.PublicKey)), nil
}

func Address(pub string) string {
	return enc.IDHash(pub)
}

func AddressValidity(addr string) bool {
	return enc.IDHashValidity(addr)
}

// Signature signs the canonical string of v with the seed's expanded secret
// key (seed followed by public key).
func Signature(v any, priv string) (string, error) {
	key, err := secretKey(priv)
	if err != nil {
		return "", err
	}
	return common.Bytes2Hex(ed25519.Sign(key, []byte(enc.String(v)))), nil
}

// SignatureValidity reports whether sig is a valid signature of v by pub.
func SignatureValidity(v any, pub, sig string) bool {
	if len(sig) != SignatureSize || !enc.IsHex(sig) || !KeyValidity(pub) {
		return false
	}
	return ed25519.Verify(common.Hex2Bytes(pub), []byte(enc.String(v)), common.Hex2Bytes(sig))
}

// KeyValidity reports whether key is exactly 64 hex characters.
func KeyValidity(key string) bool {
	return keyPattern.MatchString(key)
}

func secretKey(priv string) (ed25519.PrivateKey, error) {
	if !KeyValidity(priv) {
		return nil, fmt.Errorf("%w: private key must be %d hex characters", ErrInvalidKey, KeySize)
	}
	return ed25519.NewKeyFromSeed(common.Hex2Bytes(priv)), nil
}
