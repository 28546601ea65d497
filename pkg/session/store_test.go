package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"geotodo/pkg/session"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewFileStore(path)

	t.Run("load before save", func(t *testing.T) {
		s, err := store.Load()
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("roundtrip", func(t *testing.T) {
		in := &session.Session{UserID: "u1", Email: "a@b.com", Token: "tok"}
		assert.NoError(t, store.Save(in))

		out, err := store.Load()
		assert.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("corrupt record", func(t *testing.T) {
		assert.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

		s, err := store.Load()
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("clear twice", func(t *testing.T) {
		assert.NoError(t, store.Clear())
		assert.NoError(t, store.Clear())

		_, err := store.Load()
		assert.Error(t, err)
	})
}
