// Package fileutils provides the file and text decoding helpers used by the commands.
package fileutils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/camt-recon/internal/models"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Supported ledger encodings
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var legacyEncodings = map[string]encoding.Encoding{
	EncodingWindows1252: charmap.Windows1252,
	EncodingISO88591:    charmap.ISO8859_1,
}

// NormalizeEncoding maps an encoding label to one of the supported names.
// The empty label means UTF-8.
func NormalizeEncoding(label string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return EncodingISO88591, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s", label)
	}
}

// DecodeText converts raw bytes in the named encoding to a string.
// A leading UTF-8 byte order mark is dropped.
func DecodeText(data []byte, label string) (string, error) {
	name, err := NormalizeEncoding(label)
	if err != nil {
		return "", err
	}

	if name == EncodingUTF8 {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	decoded, err := legacyEncodings[name].NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", name, err)
	}
	return string(decoded), nil
}

// ReadText reads a file and decodes it with DecodeText
func ReadText(filePath, label string) (string, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return DecodeText(data, label)
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// ReadFile reads the entire contents of a file and returns it as a byte slice
func ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// WriteFile writes data to a file, creating any parent directories if needed
func WriteFile(filePath string, data []byte) error {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, data, models.PermissionFile); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
