package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "proj-x")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "")

	cfg := Load()
	assert.Equal(t, "proj-x", cfg.ProjectID)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "proj-x.appspot.com", cfg.StorageBucket)
}

func TestLoadOrigins(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "proj-x")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test , https://b.test,")

	cfg := Load()
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
}

func TestLoadProjectFallback(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "gcp-proj")

	cfg := Load()
	assert.Equal(t, "gcp-proj", cfg.ProjectID)
}
