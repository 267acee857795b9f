package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"ctr/internal/store"
	"ctr/internal/suite"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	CaseDir     string
	ImageDir    string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Processors int
	Operator   string

	Database Database
	Suites   []suite.Definition

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Database holds connection settings shared by all workers
type Database struct {
	Driver    string `toml:"driver"`
	Host      string `toml:"host"`
	Port      string `toml:"port"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Prefix    string `toml:"prefix"`
	SQLiteDir string `toml:"sqlite_dir"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigPath     string
	Processors     int
	Filter         string
	Migrate        bool
	Fresh          bool
	FailFast       bool
	PersistOnAbort bool
	Operator       string
	Verbose        bool
	OpenFaills     bool
	ShowCases      bool
}

// file is the layout of ctr.toml
type file struct {
	General struct {
		CaseDir    string `toml:"case_dir"`
		ImageDir   string `toml:"image_dir"`
		OutputDir  string `toml:"output_dir"`
		OutputFile string `toml:"output_file"`
		Workers    int    `toml:"workers"`
		Operator   string `toml:"operator"`
	} `toml:"general"`
	Database Database           `toml:"database"`
	Suites   []suite.Definition `toml:"suite"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		CaseDir:        DefaultCaseDir,
		ImageDir:       DefaultImageDir,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Processors:     DefaultProcessors,
		Database: Database{
			Driver:    DefaultDriver,
			Host:      DefaultDBHost,
			Port:      DefaultDBPort,
			Username:  DefaultDBUser,
			Prefix:    DefaultDatabasePrefix,
			SQLiteDir: DefaultSQLiteDir,
		},
		Suites: suite.Defaults(),
		Flags:  Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds the configuration from defaults, the TOML file, the
// environment (.env included) and finally the command-line flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	path := flags.ConfigPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.ProjectPath, DefaultConfigFile)
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	cfg.applyEnv()

	cfg.applyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&c.CaseDir, f.General.CaseDir)
	setString(&c.ImageDir, f.General.ImageDir)
	setString(&c.OutputJSONDir, f.General.OutputDir)
	setString(&c.OutputJSONFile, f.General.OutputFile)
	setString(&c.Operator, f.General.Operator)
	if f.General.Workers > 0 {
		c.Processors = f.General.Workers
	}

	setString(&c.Database.Driver, f.Database.Driver)
	setString(&c.Database.Host, f.Database.Host)
	setString(&c.Database.Port, f.Database.Port)
	setString(&c.Database.Username, f.Database.Username)
	setString(&c.Database.Password, f.Database.Password)
	setString(&c.Database.Prefix, f.Database.Prefix)
	setString(&c.Database.SQLiteDir, f.Database.SQLiteDir)

	c.Suites = suite.Merge(c.Suites, f.Suites)
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Database.Driver, os.Getenv("DB_CONNECTION"))
	setString(&c.Database.Host, os.Getenv("DB_HOST"))
	setString(&c.Database.Port, os.Getenv("DB_PORT"))
	setString(&c.Database.Username, os.Getenv("DB_USERNAME"))
	setString(&c.Database.Password, os.Getenv("DB_PASSWORD"))
	setString(&c.Database.Prefix, os.Getenv("DB_DATABASE_PREFIX"))
}

func (c *Config) applyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	setString(&c.Operator, flags.Operator)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks the database driver and every suite definition
func (c *Config) Validate() error {
	if _, err := store.ParseDialect(c.Database.Driver); err != nil {
		return err
	}
	if c.Processors <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Processors)
	}
	seen := make(map[string]bool, len(c.Suites))
	for _, d := range c.Suites {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Name] {
			return fmt.Errorf("suite %s defined twice", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// Dialect returns the configured database dialect
func (c *Config) Dialect() store.Dialect {
	d, _ := store.ParseDialect(c.Database.Driver)
	return d
}

// GetCaseDir returns the case directory relative to the project path
func (c *Config) GetCaseDir() string {
	if filepath.IsAbs(c.CaseDir) {
		return c.CaseDir
	}
	return filepath.Join(c.ProjectPath, c.CaseDir)
}

// CasePath returns the full path of a case table given relative to the case dir
func (c *Config) CasePath(file string) string {
	return filepath.Join(c.GetCaseDir(), file)
}

// GetImageDir returns the directory appeal images are written to
func (c *Config) GetImageDir() string {
	if filepath.IsAbs(c.ImageDir) {
		return c.ImageDir
	}
	return filepath.Join(c.ProjectPath, c.ImageDir)
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and faills always read/write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	dir := c.OutputJSONDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.ProjectPath, dir)
	}
	p := filepath.Join(dir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetDatabaseName returns the database name for a worker
func (c *Config) GetDatabaseName(workerID int) string {
	prefix := c.Database.Prefix
	if prefix == "" {
		prefix = DefaultDatabasePrefix
	}
	return fmt.Sprintf("%s_%d", prefix, workerID)
}

// ServerDSN returns the MySQL DSN without a database selected
func (c *Config) ServerDSN() string {
	db := c.Database
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/", db.Username, db.Password, db.Host, db.Port)
}

// DSN returns the data source name of a worker's database
func (c *Config) DSN(workerID int) string {
	name := c.GetDatabaseName(workerID)
	if c.Dialect() == store.MySQL {
		return c.ServerDSN() + name + "?parseTime=true&loc=Local"
	}
	dir := c.Database.SQLiteDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.ProjectPath, dir)
	}
	return filepath.Join(dir, name+".db")
}
