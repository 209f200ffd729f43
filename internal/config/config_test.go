package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BASE_BRANCH", "GITHUB_REF_NAME", "GITHUB_HEAD_REF", "GITHUB_RUN_ID",
		"TESTPILOT_MODEL", "GEMINI_API_KEY", "SRC_ROOT", "TEST_ROOT",
		"SOURCE_EXT", "TEST_SUFFIX", "MAX_HEAL_ATTEMPTS", "ARTIFACT_S3_ENDPOINT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.BaseBranch)
	assert.Equal(t, "local", cfg.RunID)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "src/main/java", cfg.SourceRoot)
	assert.Equal(t, "src/test/java", cfg.TestRoot)
	assert.Equal(t, ".java", cfg.SourceExt)
	assert.Equal(t, "Test", cfg.TestSuffix)
	assert.Equal(t, 2, cfg.MaxHealAttempts)
	assert.False(t, cfg.Artifact.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_BRANCH", "develop")
	t.Setenv("GITHUB_REF_NAME", "55/merge")
	t.Setenv("GITHUB_RUN_ID", "99887")
	t.Setenv("MAX_HEAL_ATTEMPTS", "4")
	t.Setenv("ARTIFACT_S3_ENDPOINT", "minio.local:9000")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "develop", cfg.BaseBranch)
	assert.Equal(t, "55/merge", cfg.RefName)
	assert.Equal(t, "99887", cfg.RunID)
	assert.Equal(t, 4, cfg.MaxHealAttempts)
	assert.True(t, cfg.Artifact.Enabled)
	assert.Equal(t, "minio.local:9000", cfg.Artifact.Endpoint)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_HEAL_ATTEMPTS", "zero")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxHealAttempts)

	t.Setenv("MAX_HEAL_ATTEMPTS", "-3")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxHealAttempts)
}

func TestLoad_ProjectFileOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := `sourceRoot: src/main/kotlin
testRoot: src/test/kotlin
sourceExt: .kt
ignoreDirs:
  - generated
maxHealAttempts: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testpilot.yml"), []byte(yml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "src/main/kotlin", cfg.SourceRoot)
	assert.Equal(t, "src/test/kotlin", cfg.TestRoot)
	assert.Equal(t, ".kt", cfg.SourceExt)
	assert.Equal(t, []string{"generated"}, cfg.IgnoreDirs)
	assert.Equal(t, 3, cfg.MaxHealAttempts)
	// Untouched keys keep their defaults.
	assert.Equal(t, "Test", cfg.TestSuffix)
}

func TestLoad_MalformedProjectFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testpilot.yml"), []byte("sourceRoot: [unclosed"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
