// Package cryptox implements the credential cipher: passwords are encrypted
// with a pre-shared key before they are sent to the login endpoint, so the
// backend never receives the plaintext even inside the TLS tunnel.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dmravi/erpcli/internal/common"
)

// The passphrase and derivation parameters are fixed and must match the
// backend's decryption side exactly.
const (
	keyPassphrase = "Erp$Rep0rts@Mobile#2019"
	keySalt       = "erpcli-credential-v1"
	keyIterations = 10000
	keyLength     = 32

	nonceSize = 12
)

var cipherKey = pbkdf2.Key([]byte(keyPassphrase), []byte(keySalt), keyIterations, keyLength, sha256.New)

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Encrypt seals the plaintext with AES-256-GCM under the pre-shared key.
// A fresh random nonce is generated per call and prepended to the
// ciphertext; the result is std base64 so it is safe in a JSON body.
func Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(cipherKey)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("creating gcm: %w", err)
	}

	nonce := common.GenerateRandByteArray(nonceSize)
	sealed := aesgcm.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. The backend performs this server-side; the
// client-side implementation exists for the symmetric self-test.
func Decrypt(encoded string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding ciphertext: %w", err)
	}
	if len(sealed) < nonceSize {
		return nil, ErrMalformedCiphertext
	}

	block, err := aes.NewCipher(cipherKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating gcm: %w", err)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("opening ciphertext: %w", err)
	}
	return plaintext, nil
}
