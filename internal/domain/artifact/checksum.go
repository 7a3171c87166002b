package artifact

import (
	"bytes"
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// DefaultChecksumFunction is used to hash produced artifacts.
	DefaultChecksumFunction crypto.Hash = crypto.SHA512

	// DefaultFileMode is applied to executables installed by the deploy step.
	DefaultFileMode os.FileMode = 0o755
)

var (
	// errHashUnavailable is returned when the checksum function is not linked in.
	errHashUnavailable = errors.New("hash function unavailable")
	// ErrChecksumMismatch indicates a file does not match its recorded checksum.
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")
)

// FileChecksum returns checksum bytes for a file using DefaultChecksumFunction.
func FileChecksum(path string) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	if !DefaultChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := DefaultChecksumFunction.New()
	if _, err = hasher.Write(contents); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}

// EncodeChecksum renders checksum bytes in the base64 form stored in descriptions.
func EncodeChecksum(sum []byte) string {
	return base64.StdEncoding.EncodeToString(sum)
}

// DecodeChecksum parses the base64 checksum form back into bytes.
func DecodeChecksum(s string) ([]byte, error) {
	sum, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode checksum: %w", err)
	}

	return sum, nil
}

// Verify compares the file at path against the checksum recorded in the description.
func (d *Description) Verify(path string) error {
	want, err := DecodeChecksum(d.Checksum)
	if err != nil {
		return err
	}

	got, err := FileChecksum(path)
	if err != nil {
		return fmt.Errorf("checksum %s: %w", path, err)
	}

	if !bytes.Equal(want, got) {
		return fmt.Errorf("%s: %w", path, ErrChecksumMismatch)
	}

	return nil
}

// ExecutableName appends the platform executable extension to a base name.
func ExecutableName(name string) string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return name + ".exe"
	}

	return name
}
