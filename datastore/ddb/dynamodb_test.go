/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "region only", cfg: Config{Region: "us-east-1"}},
		{name: "static credentials", cfg: Config{Region: "us-east-1", AccessKey: "a", SecretKey: "s"}},
		{name: "local endpoint", cfg: Config{Region: "us-east-1", Endpoint: "http://localhost:8000"}},
		{name: "missing region", cfg: Config{}, wantErr: true},
		{name: "access key without secret", cfg: Config{Region: "us-east-1", AccessKey: "a"}, wantErr: true},
		{name: "bad endpoint", cfg: Config{Region: "us-east-1", Endpoint: "not a url"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	for _, key := range []string{EnvRegion, EnvAccessKey, EnvSecretKey, EnvEndpoint} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	content := "AWS_REGION=eu-west-1\nDYNAMODB_ENDPOINT=http://localhost:8000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
	assert.Empty(t, cfg.AccessKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(EnvRegion, "us-west-2")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

func TestLoadConfigRequiresRegion(t *testing.T) {
	t.Setenv(EnvRegion, "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
