package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctr/internal/store"
)

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DB_CONNECTION", "DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWORD", "DB_DATABASE_PREFIX"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctr.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultCaseDir, cfg.CaseDir)
	assert.Equal(t, DefaultProcessors, cfg.Processors)
	assert.Equal(t, store.SQLite, cfg.Dialect())
	assert.Len(t, cfg.Suites, 3)
	require.NoError(t, cfg.Validate())
}

func TestConfig_GetDatabaseName(t *testing.T) {
	cfg := New()

	t.Run("default database name", func(t *testing.T) {
		name := cfg.GetDatabaseName(1)
		expected := "ctr_testing_1"
		if name != expected {
			t.Errorf("expected %s, got %s", expected, name)
		}
	})

	t.Run("custom prefix", func(t *testing.T) {
		custom := New()
		custom.Database.Prefix = "club"
		if name := custom.GetDatabaseName(3); name != "club_3" {
			t.Errorf("expected club_3, got %s", name)
		}
	})
}

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		expected string
	}{
		{
			name:     "sqlite file per worker",
			mutate:   func(c *Config) { c.ProjectPath = "/project" },
			expected: filepath.Join("/project", "storage", "ctr_testing_2.db"),
		},
		{
			name: "absolute sqlite dir",
			mutate: func(c *Config) {
				c.ProjectPath = "/project"
				c.Database.SQLiteDir = "/var/ctr"
			},
			expected: filepath.Join("/var/ctr", "ctr_testing_2.db"),
		},
		{
			name: "mysql",
			mutate: func(c *Config) {
				c.Database.Driver = "mysql"
				c.Database.Password = "secret"
			},
			expected: "root:secret@tcp(127.0.0.1:3306)/ctr_testing_2?parseTime=true&loc=Local",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			assert.Equal(t, tt.expected, cfg.DSN(2))
		})
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = "/project"

	assert.Equal(t, "/project/testcases/unit/order/prohibit.csv", filepath.ToSlash(cfg.CasePath("unit/order/prohibit.csv")))
	assert.Equal(t, "/project/storage/appeal-images", filepath.ToSlash(cfg.GetImageDir()))
	assert.True(t, filepath.IsAbs(cfg.GetOutputPath()))
	assert.Equal(t, "test-results.json", filepath.Base(cfg.GetOutputPath()))

	cfg.CaseDir = "/cases"
	assert.Equal(t, "/cases", cfg.GetCaseDir())
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	clearDBEnv(t)
	cfg, err := Load(Flags{})
	require.NoError(t, err)
	assert.Equal(t, DefaultProcessors, cfg.Processors)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearDBEnv(t)
	_, err := Load(Flags{ConfigPath: filepath.Join(t.TempDir(), "nope.toml")})
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	clearDBEnv(t)
	path := writeConfig(t, `
[general]
case_dir = "acceptance"
workers = 6
operator = "1000001"

[database]
driver = "mysql"
host = "db.internal"
prefix = "club_testing"

[[suite]]
name = "prohibit"
operation = "prohibit"
file = "ban.csv"
operator = "42"

[suite.layout]
expected = 3
actual = 4
result = 5
time = 6
operator = 7

[suite.layout.inputs]
user_id = 1
if_prohibited = 2

[[suite]]
name = "ban_again"
operation = "prohibit"
file = "ban_again.csv"

[suite.layout]
expected = 3
actual = 4
result = 5
time = 6
operator = 7

[suite.layout.inputs]
user_id = 1
if_prohibited = 2
`)

	cfg, err := Load(Flags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "acceptance", cfg.CaseDir)
	assert.Equal(t, 6, cfg.Processors)
	assert.Equal(t, "1000001", cfg.Operator)
	assert.Equal(t, store.MySQL, cfg.Dialect())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "club_testing_1", cfg.GetDatabaseName(1))

	require.Len(t, cfg.Suites, 4)
	assert.Equal(t, "ban.csv", cfg.Suites[1].File)
	assert.Equal(t, 2, cfg.Suites[1].Layout.Inputs["if_prohibited"])
	assert.Equal(t, "ban_again", cfg.Suites[3].Name)
}

func TestLoad_EnvAndFlagsOverride(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DB_DATABASE_PREFIX", "from_env")
	t.Setenv("DB_PASSWORD", "pw")
	path := writeConfig(t, "[general]\nworkers = 6\noperator = \"1\"\n")

	cfg, err := Load(Flags{ConfigPath: path, Processors: 2, Operator: "9", PersistOnAbort: true})
	require.NoError(t, err)

	assert.Equal(t, "from_env_1", cfg.GetDatabaseName(1))
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, 2, cfg.Processors)
	assert.Equal(t, "9", cfg.Operator)
	assert.True(t, cfg.Flags.PersistOnAbort)
}

func TestLoad_Invalid(t *testing.T) {
	clearDBEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad toml", content: "[general\n"},
		{name: "unknown driver", content: "[database]\ndriver = \"oracle\"\n"},
		{name: "unknown operation", content: "[[suite]]\nname = \"x\"\noperation = \"drop\"\nfile = \"x.csv\"\n"},
		{
			name:    "layout without outcome columns",
			content: "[[suite]]\nname = \"ban\"\noperation = \"prohibit\"\nfile = \"ban.csv\"\n\n[suite.layout.inputs]\nuser_id = 1\nif_prohibited = 2\n",
		},
		{
			name:    "override layout writing over an input",
			content: "[[suite]]\nname = \"prohibit\"\n\n[suite.layout]\nexpected = 3\nactual = 1\nresult = 5\ntime = 7\noperator = 8\n\n[suite.layout.inputs]\nuser_id = 1\nif_prohibited = 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Flags{ConfigPath: writeConfig(t, tt.content)})
			assert.Error(t, err)
		})
	}
}
