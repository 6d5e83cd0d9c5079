package utils

import (
	"fmt"
	"hash"
	"io"
	"os"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/MKhiriev/go-tree-sync/models"
)

// copyBufferSize is the size of the read buffer used while streaming file
// content through a hasher.
const copyBufferSize = 64 * 1024

// hasherPool is a package-level pool of reusable BLAKE2b-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		// blake2b.New256 only fails for keys longer than 64 bytes.
		h, _ := blake2b.New256(nil)
		return h
	},
}

// bufferPool holds copy buffers shared by every digest computation.
var bufferPool = sync.Pool{
	New: func() any {
		b := make([]byte, copyBufferSize)
		return &b
	},
}

// DigestReader streams r through a pooled BLAKE2b-256 hasher and returns the
// content digest together with the number of bytes read.
//
// Behavior:
//   - Retrieves a hash.Hash instance and a copy buffer from their pools
//   - Copies r into the hasher in fixed-size chunks, so memory use does not
//     depend on the size of the input
//   - Resets the hasher and returns both back to their pools
//
// Example usage:
//
//	digest, n, err := utils.DigestReader(strings.NewReader("hi"))
func DigestReader(r io.Reader) (models.Digest, int64, error) {
	var digest models.Digest

	h := hasherPool.Get().(hash.Hash)
	h.Reset()
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	buf := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(buf)

	n, err := io.CopyBuffer(h, r, *buf)
	if err != nil {
		return digest, n, err
	}

	copy(digest[:], h.Sum(nil))
	return digest, n, nil
}

// DigestFile opens the file at path and computes its content digest and size
// with [DigestReader]. The size is the number of bytes actually read, so a
// file that grows or shrinks during hashing is reported consistently with its
// digest.
func DigestFile(path string) (models.Digest, uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Digest{}, 0, err
	}
	defer f.Close()

	digest, n, err := DigestReader(f)
	if err != nil {
		return models.Digest{}, 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return digest, uint64(n), nil
}

// DigestBytes computes the content digest of an in-memory byte slice.
func DigestBytes(data []byte) models.Digest {
	return blake2b.Sum256(data)
}
