package utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// GenerateVAPIDKeys génère une paire de clés VAPID (publique et privée)
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	curve := elliptic.P256()
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("erreur lors de la génération de la clé: %w", err)
	}

	// Clé publique : point (X, Y) non compressé
	pubBytes := elliptic.Marshal(curve, key.PublicKey.X, key.PublicKey.Y)
	publicKey = base64.RawURLEncoding.EncodeToString(pubBytes)

	// Clé privée : D, paddé à 32 bytes
	privBytes := key.D.Bytes()
	if len(privBytes) < 32 {
		padding := make([]byte, 32-len(privBytes))
		privBytes = append(padding, privBytes...)
	}
	privateKey = base64.RawURLEncoding.EncodeToString(privBytes)

	return publicKey, privateKey, nil
}

// DecodeVAPIDPrivateKey décode une clé privée VAPID depuis base64
func DecodeVAPIDPrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(privateKey)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du décodage de la clé privée: %w", err)
	}

	curve := elliptic.P256()
	d := new(big.Int).SetBytes(decoded)

	key := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve},
		D:         d,
	}
	key.PublicKey.X, key.PublicKey.Y = curve.ScalarBaseMult(decoded)

	return key, nil
}
