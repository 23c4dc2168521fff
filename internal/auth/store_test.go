package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("secret", filepath.Join(dir, "token"), filepath.Join(dir, "cookies"))

	assert.NoError(t, store.Save("my-bearer-token"))

	token, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "my-bearer-token", token)

	// On disk the token is never stored in the clear.
	raw, err := os.ReadFile(filepath.Join(dir, "token"))
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "my-bearer-token")
}

func TestStore_LoadPrefersTokenFile(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	cookieFile := filepath.Join(dir, "cookies")

	// Seed both locations with different values.
	cookieWriter := NewStore("secret", cookieFile, tokenFile)
	assert.NoError(t, cookieWriter.Save("cookie-token"))

	store := NewStore("secret", tokenFile, cookieFile)
	assert.NoError(t, store.Save("primary-token"))

	token, err := store.Load()
	assert.NoError(t, err)
	assert.Equal(t, "primary-token", token)
}

func TestStore_LoadFallsBackToCookieFile(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	cookieFile := filepath.Join(dir, "cookies")

	cookieWriter := NewStore("secret", cookieFile, tokenFile)
	assert.NoError(t, cookieWriter.Save("cookie-token"))

	store := NewStore("secret", tokenFile, cookieFile)
	token, err := store.Load()

	assert.NoError(t, err)
	assert.Equal(t, "cookie-token", token)
}

func TestStore_LoadMissing(t *testing.T) {
	dir := t.TempDir()
	store := NewStore("secret", filepath.Join(dir, "token"), filepath.Join(dir, "cookies"))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestStore_WrongSecret(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	cookieFile := filepath.Join(dir, "cookies")

	writer := NewStore("secret-a", tokenFile, cookieFile)
	assert.NoError(t, writer.Save("my-bearer-token"))

	reader := NewStore("secret-b", tokenFile, cookieFile)
	_, err := reader.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	cookieFile := filepath.Join(dir, "cookies")

	store := NewStore("secret", tokenFile, cookieFile)
	assert.NoError(t, store.Save("my-bearer-token"))

	cookieWriter := NewStore("secret", cookieFile, tokenFile)
	assert.NoError(t, cookieWriter.Save("legacy-token"))

	assert.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoToken)
	_, statErr := os.Stat(cookieFile)
	assert.True(t, os.IsNotExist(statErr))
}
