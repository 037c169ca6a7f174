package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/textdup/textdup/domain"
)

// ConfigFileName is the primary configuration file searched for in the
// working directory and its parents.
const ConfigFileName = ".textdup.toml"

// TextdupConfig represents the structure of .textdup.toml.
type TextdupConfig struct {
	Dedup  DedupSection  `toml:"dedup" mapstructure:"dedup"`
	Input  InputSection  `toml:"input" mapstructure:"input"`
	Output OutputSection `toml:"output" mapstructure:"output"`
}

// DedupSection is the flat [dedup] section.
type DedupSection struct {
	SignatureSize int     `toml:"signature_size" mapstructure:"signature_size"`
	NumBands      int     `toml:"num_bands" mapstructure:"num_bands"`
	ShingleSize   int     `toml:"shingle_size" mapstructure:"shingle_size"`
	MinWords      int     `toml:"min_words" mapstructure:"min_words"`
	DefaultWeight float64 `toml:"default_weight" mapstructure:"default_weight"`
	Seed          *uint64 `toml:"seed" mapstructure:"seed"` // pointer to detect unset
	ExpectedDocs  int     `toml:"expected_docs" mapstructure:"expected_docs"`
	Threshold     float64 `toml:"threshold" mapstructure:"threshold"`
}

// InputSection is the [input] section.
type InputSection struct {
	Recursive       *bool    `toml:"recursive" mapstructure:"recursive"` // pointer to detect unset
	IncludePatterns []string `toml:"include_patterns" mapstructure:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns" mapstructure:"exclude_patterns"`
}

// OutputSection is the [output] section.
type OutputSection struct {
	Format      string `toml:"format" mapstructure:"format"`
	ShowDetails *bool  `toml:"show_details" mapstructure:"show_details"` // pointer to detect unset
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *TextdupConfig {
	recursive := true
	return &TextdupConfig{
		Dedup: DedupSection{
			SignatureSize: domain.DefaultSignatureSize,
			NumBands:      domain.DefaultNumBands,
			ShingleSize:   domain.DefaultShingleSize,
			MinWords:      domain.DefaultMinWords,
			DefaultWeight: domain.DefaultShingleWeight,
			ExpectedDocs:  domain.DefaultExpectedDocs,
			Threshold:     domain.DefaultSimilarityThreshold,
		},
		Input: InputSection{
			Recursive:       &recursive,
			IncludePatterns: []string{"**/*.txt", "**/*.md"},
		},
		Output: OutputSection{
			Format: string(domain.OutputFormatText),
		},
	}
}

// LoadConfig loads configuration from an explicit path, or discovers it
// when path is empty: .textdup.toml walking up from the working
// directory, then a viper search for textdup.yaml. Missing files are
// not an error; defaults apply.
func LoadConfig(path string) (*TextdupConfig, error) {
	cfg := DefaultConfig()

	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return cfg, nil
		}
		path = FindConfigFile(wd)
	}

	if path != "" {
		if err := loadTomlInto(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := loadViperInto(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile walks up from startDir looking for .textdup.toml and
// returns its path, or "" when no config file exists.
func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func loadTomlInto(path string, cfg *TextdupConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.NewConfigError(fmt.Sprintf("cannot read config file: %s", path), err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return domain.NewConfigError(fmt.Sprintf("cannot parse config file: %s", path), err)
	}
	return nil
}

// loadViperInto merges a textdup.yaml found on viper's search path, for
// projects that keep their tool configuration in YAML.
func loadViperInto(cfg *TextdupConfig) error {
	v := viper.New()
	v.SetConfigName("textdup")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "textdup"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return domain.NewConfigError("cannot read yaml config", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return domain.NewConfigError("cannot parse yaml config", err)
	}
	return nil
}

// DefaultConfigContent is the commented configuration written by
// `textdup init`.
const DefaultConfigContent = `# textdup configuration
#
# Near-duplicate detection over text files using MinHash signatures and
# locality-sensitive hashing. All settings are optional; the values
# shown are the defaults.

[dedup]
# Number of independent MinHash functions per signature. Must be
# divisible by num_bands.
signature_size = 100

# Number of LSH bands. More bands with fewer rows each detect lower
# similarities; fewer bands with more rows are stricter.
num_bands = 20

# Rolling shingle window width, in bytes.
shingle_size = 5

# Documents with fewer whitespace-delimited words produce no signal.
min_words = 4

# Weight for shingles absent from a supplied weight map.
default_weight = 1.0

# Expected corpus size. Each band's bucket table holds twice this many
# slots and never grows; inserts into a full table are dropped.
expected_docs = 1024

# Minimum similarity for a pair to be reported.
threshold = 0.4

# Uncomment for reproducible signatures across runs.
# seed = 42

[input]
recursive = true
include_patterns = ["**/*.txt", "**/*.md"]
exclude_patterns = []

[output]
# text, json, yaml, or csv
format = "text"
show_details = false
`

// WriteDefaultConfig writes the commented default configuration file.
func WriteDefaultConfig(path string) error {
	return os.WriteFile(path, []byte(DefaultConfigContent), 0644)
}
