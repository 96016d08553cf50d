package fastfs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// DefaultStorageDomain is the public gateway serving ingested content.
const DefaultStorageDomain = "fastfs.io"

// ContentHash returns the lowercase hex SHA-256 digest of content. It is the
// content address: identical bytes always map to the identical hash.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// RelativePath derives the storage key for content originally held in
// filename: "<hex-digest><ext>". Extensionless files fall back to ".bin".
func RelativePath(content []byte, filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	return ContentHash(content) + ext
}

// MimeTypeFor guesses the mime type from the filename extension. WASM gets
// its canonical type; anything unknown is served as an opaque octet stream.
func MimeTypeFor(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".wasm" {
		return "application/wasm"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// AccessURL constructs the public URL at which the uploaded content is
// served once the indexer has reconstructed it.
func AccessURL(sender, storageDomain, receiver, relativePath string) string {
	return fmt.Sprintf("https://%s.%s/%s/%s", sender, storageDomain, receiver, relativePath)
}

// Descriptor renders the content-hash descriptor handed to downstream
// systems that need to reference the uploaded artifact.
func Descriptor(contentHash string) string {
	b, _ := json.Marshal(struct {
		ContentHash string `json:"content_hash"`
	}{contentHash})
	return string(b)
}

// NetworkForReceiver infers the target network from the receiver account
// suffix. Returns an empty string when the suffix is not recognized.
func NetworkForReceiver(receiver string) string {
	switch {
	case strings.HasSuffix(receiver, ".near"):
		return "mainnet"
	case strings.HasSuffix(receiver, ".testnet"):
		return "testnet"
	default:
		return ""
	}
}
