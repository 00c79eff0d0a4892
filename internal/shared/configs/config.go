package configs

// Config holds all configuration for the application.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Log          LogConfig          `mapstructure:"log" validate:"required"`
	FileStorage  FileStorageConfig  `mapstructure:"file_storage" validate:"required"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries" validate:"required"`
	Aggregation  AggregationConfig  `mapstructure:"aggregation" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// DictionariesConfig locates the pre-built lookup tables the resolvers need.
// The directory is a file storage key prefix, relative to the storage root.
type DictionariesConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// AggregationConfig holds usage aggregation configuration.
type AggregationConfig struct {
	// DefaultCollection is the collection an access is attributed to when its
	// host does not map to a known collection.
	DefaultCollection string `mapstructure:"default_collection" validate:"required"`
	// IncludeNonArticle opts into counting issue/journal/platform accesses in
	// addition to article accesses.
	IncludeNonArticle bool `mapstructure:"include_non_article"`
}
