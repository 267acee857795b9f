package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the optional TOML file looked up in the project path
	DefaultConfigFile = "ctr.toml"
	// DefaultCaseDir is the default directory holding case tables
	DefaultCaseDir = "testcases"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors is the default number of workers
	DefaultProcessors = 4
	// DefaultImageDir is where appeal images are stored
	DefaultImageDir = "storage/appeal-images"

	// DefaultDriver is the default database driver
	DefaultDriver = "sqlite"
	// DefaultSQLiteDir holds one database file per worker
	DefaultSQLiteDir = "storage"
	// DefaultDatabasePrefix prefixes worker database names
	DefaultDatabasePrefix = "ctr_testing"
	// DefaultDBHost is the default MySQL host
	DefaultDBHost = "127.0.0.1"
	// DefaultDBPort is the default MySQL port
	DefaultDBPort = "3306"
	// DefaultDBUser is the default MySQL user
	DefaultDBUser = "root"
)

// DefaultPathsToIgnore are the directories skipped when scanning for case tables
var DefaultPathsToIgnore = []string{
	"storage",
	"node_modules",
	"vendor",
}
