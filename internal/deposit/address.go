// Package deposit produces the presentation artifacts of the deposit
// wizard's terminal step: a mock per-network deposit address and its QR
// code. Addresses are random base58 strings with no on-chain meaning.
package deposit

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/mr-tron/base58"
	"github.com/skip2/go-qrcode"
)

const addressBytes = 25

// networkPrefixes gives the generated strings a familiar per-network shape.
var networkPrefixes = map[string]string{
	"bitcoin":  "bc1",
	"erc20":    "0x",
	"arbitrum": "0x",
	"trc20":    "T",
}

// NewAddress generates a fresh mock deposit address for a network.
func NewAddress(networkID string) (string, error) {
	raw := make([]byte, addressBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("failed to generate address: %w", err)
	}
	return networkPrefixes[networkID] + base58.Encode(raw), nil
}

// QRCode renders an address as a base64 encoded PNG.
func QRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
