package adapter_test

import (
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront/internal/adapter"
	"github.com/stretchr/testify/assert"
)

func TestMakeTLSConfigMissingFiles(t *testing.T) {
	dir := t.TempDir()
	assert.Panics(t, func() {
		adapter.MakeTLSConfig(
			filepath.Join(dir, "ca.pem"),
			filepath.Join(dir, "cert.pem"),
			filepath.Join(dir, "key.pem"),
		)
	})
}
