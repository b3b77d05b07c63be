package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш содержимого файла
type Digest [32]byte

// Combine строит ключ кэша: H( content || salt1 || salt2 ... ).
// Соль включает версию проверяющего, чтобы старые вердикты не переиспользовались.
func Combine(content Digest, salts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range salts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(s))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Sum hashes raw file content.
func Sum(content []byte) Digest {
	return sha256.Sum256(content)
}

// Hex returns the lowercase hex form of d.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
