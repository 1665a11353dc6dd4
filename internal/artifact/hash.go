package artifact

import (
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"
)

// Domain keys separate content digests from step digests so identical
// bytes never collide across the two. ASCII name, zero-padded to 32 bytes.
var (
	contentDomainKey = [32]byte{
		'u', 's', 'e', 'r', 'e', 'n', 'v', '.', 'c', 'o', 'n', 't', 'e', 'n', 't',
	}
	stepDomainKey = [32]byte{
		'u', 's', 'e', 'r', 'e', 'n', 'v', '.', 's', 't', 'e', 'p',
	}
)

// HashContent returns the hex BLAKE3 digest of a file's bytes.
func HashContent(data []byte) string {
	return keyedHash(contentDomainKey, data)
}

// HashStep derives an artifact id from everything that affects a step's
// output: name, systems, script and source digests.
func HashStep(step Step) ID {
	h := newKeyed(stepDomainKey)
	writeField(h, step.Name)
	writeCount(h, len(step.Systems))
	for _, sys := range step.Systems {
		writeField(h, string(sys))
	}
	writeField(h, step.Script)
	writeCount(h, len(step.Sources))
	for _, src := range step.Sources {
		writeField(h, src.Name)
		paths := make([]string, 0, len(src.Files))
		for p := range src.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		writeCount(h, len(paths))
		for _, p := range paths {
			writeField(h, p)
			writeField(h, src.Files[p])
		}
	}
	return ID(hex.EncodeToString(h.Sum(nil)))
}

func keyedHash(key [32]byte, data []byte) string {
	h := newKeyed(key)
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func newKeyed(key [32]byte) *blake3.Hasher {
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("artifact: " + err.Error())
	}
	return h
}

// writeCount prefixes a list with its length so items cannot shift between
// adjacent lists.
func writeCount(h *blake3.Hasher, n int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	_, _ = h.Write(b[:])
}

// writeField length-prefixes each value so adjacent fields cannot run together.
func writeField(h *blake3.Hasher, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	_, _ = h.Write(n[:])
	_, _ = h.Write([]byte(s))
}
