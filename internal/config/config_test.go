package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckEnv(t *testing.T) {
	tests := []struct {
		name      string
		envVars   []string
		setup     func()
		teardown  func()
		wantError bool
	}{
		{
			name:    "AllVariablesPresent",
			envVars: []string{"TEST_VAR_1", "TEST_VAR_2"},
			setup: func() {
				os.Setenv("TEST_VAR_1", "value1")
				os.Setenv("TEST_VAR_2", "value2")
			},
			teardown: func() {
				os.Unsetenv("TEST_VAR_1")
				os.Unsetenv("TEST_VAR_2")
			},
			wantError: false,
		},
		{
			name:    "OneVariableMissing",
			envVars: []string{"TEST_VAR_1", "TEST_VAR_2"},
			setup: func() {
				os.Setenv("TEST_VAR_1", "value1")
			},
			teardown: func() {
				os.Unsetenv("TEST_VAR_1")
			},
			wantError: true,
		},
		{
			name:    "VariablePresentButEmpty",
			envVars: []string{"TEST_VAR_1"},
			setup: func() {
				os.Setenv("TEST_VAR_1", "")
			},
			teardown: func() {
				os.Unsetenv("TEST_VAR_1")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			err := checkEnv(tt.envVars)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_MODE", "dev")
	t.Setenv("INPUT_DIR", "./input")
	t.Setenv("OUTPUT_DIR", "./downloads")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./downloads", cfg.OutputDir)
	assert.Equal(t, DefaultWorkerCount, cfg.WorkerCount)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Empty(t, cfg.StatusPort)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("STATUS_PORT", "8090")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "8090", cfg.StatusPort)
}

func TestLoadConfig_InvalidWorkerCount(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "NotANumber", value: "many"},
		{name: "Zero", value: "0"},
		{name: "Negative", value: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("WORKER_COUNT", tt.value)

			_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingRequiredVars(t *testing.T) {
	t.Setenv("LOG_MODE", "dev")
	t.Setenv("INPUT_DIR", "")
	t.Setenv("OUTPUT_DIR", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	t.Setenv("LOG_MODE", "")
	t.Setenv("INPUT_DIR", "")
	t.Setenv("OUTPUT_DIR", "")
	os.Unsetenv("LOG_MODE")
	os.Unsetenv("INPUT_DIR")
	os.Unsetenv("OUTPUT_DIR")

	envPath := filepath.Join(t.TempDir(), ".env")
	content := "LOG_MODE=prod\nINPUT_DIR=/data/input\nOUTPUT_DIR=/data/out\n"
	assert.NoError(t, os.WriteFile(envPath, []byte(content), 0644))

	cfg, err := LoadConfig(envPath)

	assert.NoError(t, err)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, "/data/input", cfg.InputDir)
	assert.Equal(t, "/data/out", cfg.OutputDir)
}
