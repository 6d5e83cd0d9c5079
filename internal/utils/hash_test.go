// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/blake2b"
)

func TestDigestReader_MatchesDirectSum(t *testing.T) {
	data := []byte("test-data")

	got, n, err := DigestReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(data)) {
		t.Fatalf("read %d bytes, want %d", n, len(data))
	}

	want := blake2b.Sum256(data)
	if got != want {
		t.Fatalf("unexpected digest\nwant: %x\ngot:  %x", want, got)
	}
}

func TestDigestReader_Deterministic(t *testing.T) {
	d1, _, _ := DigestReader(strings.NewReader("hi"))
	d2, _, _ := DigestReader(strings.NewReader("hi"))

	if d1 != d2 {
		t.Fatal("digest must be deterministic for the same input")
	}
}

func TestDigestReader_DifferentContent(t *testing.T) {
	d1, _, _ := DigestReader(strings.NewReader("hi"))
	d2, _, _ := DigestReader(strings.NewReader("bye"))

	if d1 == d2 {
		t.Fatal("different content must produce different digests")
	}
}

// TestDigestReader_LargerThanBuffer streams more than one copy buffer.
func TestDigestReader_LargerThanBuffer(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), copyBufferSize/4)

	got, n, err := DigestReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(data)) {
		t.Fatalf("read %d bytes, want %d", n, len(data))
	}
	if got != DigestBytes(data) {
		t.Fatal("streamed digest differs from in-memory digest")
	}
}

func TestDigestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	digest, size, err := DigestFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != 2 {
		t.Errorf("size = %d, want 2", size)
	}
	if digest != DigestBytes([]byte("hi")) {
		t.Error("file digest differs from content digest")
	}
}

func TestDigestFile_IgnoresMetadata(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	_ = os.WriteFile(a, []byte("same"), 0o644)
	_ = os.WriteFile(b, []byte("same"), 0o600)

	da, _, _ := DigestFile(a)
	db, _, _ := DigestFile(b)

	if da != db {
		t.Error("permissions must not affect the digest")
	}
}

func TestDigestFile_Missing(t *testing.T) {
	_, _, err := DigestFile(filepath.Join(t.TempDir(), "missing"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
