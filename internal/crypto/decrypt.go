package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"

	"exwiz/internal/model"
)

// ErrWrongPassphrase is returned when the sealed data does not authenticate
// under the derived key.
var ErrWrongPassphrase = errors.New("invalid passphrase")

// Open decrypts a sealed file with the passphrase.
// passphrase must be []byte (caller should zero it after use).
func Open(sealed *model.SealedFile, passphrase []byte) ([]byte, error) {
	if sealed == nil {
		return nil, errors.New("nil sealed file")
	}
	if sealed.Version != sealedVersion {
		return nil, fmt.Errorf("unsupported sealed file version %d", sealed.Version)
	}

	salt, err := base64.StdEncoding.DecodeString(sealed.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(sealed.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(sealed.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return plaintext, nil
}
