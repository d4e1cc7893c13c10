package model

// SealedFile is the on-disk structure of an encrypted snapshot file.
// Salt, Nonce and CipherText are base64 encoded.
type SealedFile struct {
	Version    int    `json:"version"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}
