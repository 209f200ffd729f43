// Package config loads the agent's environment-style configuration into an
// explicit value passed to constructors; no package reads the environment on
// its own.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface of one run.
type Config struct {
	// RepoDir is the repository under analysis (the git working tree).
	RepoDir string
	// BaseBranch is the diff comparison base.
	BaseBranch string
	// RefName is the originating change-request ref (GITHUB_REF_NAME).
	RefName string
	// HeadRef is the current working branch (GITHUB_HEAD_REF); used to skip
	// re-entrant runs on an already-generated branch.
	HeadRef string
	// RunID namespaces the plan id and remote artifacts.
	RunID string

	Model  string
	APIKey string

	SourceRoot      string
	TestRoot        string
	SourceExt       string
	TestSuffix      string
	IgnoreDirs      []string
	MaxHealAttempts int

	Artifact ArtifactConfig
}

// ArtifactConfig enables the optional S3 artifact upload.
type ArtifactConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// fileConfig is the optional per-project override file (testpilot.yml).
type fileConfig struct {
	SourceRoot      string   `yaml:"sourceRoot,omitempty"`
	TestRoot        string   `yaml:"testRoot,omitempty"`
	SourceExt       string   `yaml:"sourceExt,omitempty"`
	TestSuffix      string   `yaml:"testSuffix,omitempty"`
	IgnoreDirs      []string `yaml:"ignoreDirs,omitempty"`
	MaxHealAttempts int      `yaml:"maxHealAttempts,omitempty"`
}

// Load reads .env (when present), the environment, and the project override
// file from repoDir.
func Load(repoDir string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RepoDir:         repoDir,
		BaseBranch:      envOr("BASE_BRANCH", "main"),
		RefName:         strings.TrimSpace(os.Getenv("GITHUB_REF_NAME")),
		HeadRef:         strings.TrimSpace(os.Getenv("GITHUB_HEAD_REF")),
		RunID:           envOr("GITHUB_RUN_ID", "local"),
		Model:           envOr("TESTPILOT_MODEL", "gemini-2.5-flash"),
		APIKey:          strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		SourceRoot:      envOr("SRC_ROOT", "src/main/java"),
		TestRoot:        envOr("TEST_ROOT", "src/test/java"),
		SourceExt:       envOr("SOURCE_EXT", ".java"),
		TestSuffix:      envOr("TEST_SUFFIX", "Test"),
		MaxHealAttempts: envIntOr("MAX_HEAL_ATTEMPTS", 2),
		Artifact:        loadArtifactConfig(),
	}

	if fc, err := loadFileConfig(repoDir); err != nil {
		return nil, err
	} else if fc != nil {
		applyFileConfig(cfg, fc)
	}
	return cfg, nil
}

func loadFileConfig(dir string) (*fileConfig, error) {
	for _, name := range []string{"testpilot.yml", "testpilot.yaml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
		return &fc, nil
	}
	return nil, nil
}

func applyFileConfig(cfg *Config, fc *fileConfig) {
	if fc.SourceRoot != "" {
		cfg.SourceRoot = fc.SourceRoot
	}
	if fc.TestRoot != "" {
		cfg.TestRoot = fc.TestRoot
	}
	if fc.SourceExt != "" {
		cfg.SourceExt = fc.SourceExt
	}
	if fc.TestSuffix != "" {
		cfg.TestSuffix = fc.TestSuffix
	}
	if len(fc.IgnoreDirs) > 0 {
		cfg.IgnoreDirs = fc.IgnoreDirs
	}
	if fc.MaxHealAttempts > 0 {
		cfg.MaxHealAttempts = fc.MaxHealAttempts
	}
}

func loadArtifactConfig() ArtifactConfig {
	endpoint := strings.TrimSpace(os.Getenv("ARTIFACT_S3_ENDPOINT"))
	return ArtifactConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    envOr("ARTIFACT_S3_REGION", "us-east-1"),
		AccessKey: strings.TrimSpace(os.Getenv("ARTIFACT_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("ARTIFACT_S3_SECRET_KEY")),
		Bucket:    envOr("ARTIFACT_S3_BUCKET", "testpilot-artifacts"),
		UseSSL:    envBoolOr("ARTIFACT_S3_USE_SSL", true),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
