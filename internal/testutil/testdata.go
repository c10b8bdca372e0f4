package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestdataPath returns the absolute path to the testdata directory
// adjacent to the caller's source file.
func TestdataPath(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(1)
	require.True(t, ok, "failed to get caller info")
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// PrivateKeyPEM generates a throwaway PKCS#8 RSA key with real line breaks.
func PrivateKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// EscapedPrivateKeyPEM is PrivateKeyPEM in its single-line form.
func EscapedPrivateKeyPEM(t *testing.T) string {
	t.Helper()
	return strings.ReplaceAll(PrivateKeyPEM(t), "\n", `\n`)
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the directory.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	return dir
}
