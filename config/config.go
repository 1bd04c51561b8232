// Package config holds paths and options of a library database.
// There is no process-wide configuration: a *Config is passed to
// library.Open.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultBookFile       = "books.dat"
	DefaultMemberFile     = "members.dat"
	DefaultLoanFile       = "borrows.dat"
	DefaultBookReportFile = "books_report.txt"
	DefaultLoanReportFile = "borrows_report.txt"

	// environment variables are FLATLIB_DATA_DIR etc.
	EnvPrefix = "FLATLIB"
)

type Config struct {
	// relative file names below are resolved against DataDir
	DataDir string

	BookFile   string
	MemberFile string
	LoanFile   string

	BookReportFile string
	LoanReportFile string

	// if empty, we only log to stdout
	LogDir string

	// if true, a partial block at the end of a data file is an error
	// instead of being ignored
	StrictTail bool
	Verbose    bool
}

// Default returns config for data files in the current directory
func Default() *Config {
	return &Config{
		DataDir:        ".",
		BookFile:       DefaultBookFile,
		MemberFile:     DefaultMemberFile,
		LoanFile:       DefaultLoanFile,
		BookReportFile: DefaultBookReportFile,
		LoanReportFile: DefaultLoanReportFile,
		StrictTail:     true,
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("book_file", def.BookFile)
	v.SetDefault("member_file", def.MemberFile)
	v.SetDefault("loan_file", def.LoanFile)
	v.SetDefault("book_report_file", def.BookReportFile)
	v.SetDefault("loan_report_file", def.LoanReportFile)
	v.SetDefault("log_dir", def.LogDir)
	v.SetDefault("strict_tail", def.StrictTail)
	v.SetDefault("verbose", def.Verbose)
}

func loadConfig(v *viper.Viper) *Config {
	return &Config{
		DataDir:        v.GetString("data_dir"),
		BookFile:       v.GetString("book_file"),
		MemberFile:     v.GetString("member_file"),
		LoanFile:       v.GetString("loan_file"),
		BookReportFile: v.GetString("book_report_file"),
		LoanReportFile: v.GetString("loan_report_file"),
		LogDir:         v.GetString("log_dir"),
		StrictTail:     v.GetBool("strict_tail"),
		Verbose:        v.GetBool("verbose"),
	}
}

// Load reads config from a file (format is picked by extension:
// .yaml, .toml, .json etc.) and FLATLIB_* environment variables.
// If path is empty, only defaults and environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading '%s' failed: %w", path, err)
		}
	}
	cfg := loadConfig(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is not set. For current directory, use '.'")
	}
	names := map[string]string{
		"book_file":   c.BookFile,
		"member_file": c.MemberFile,
		"loan_file":   c.LoanFile,
	}
	seen := map[string]string{}
	for key, name := range names {
		if name == "" {
			return fmt.Errorf("config: %s is not set", key)
		}
		p := c.resolve(name)
		if other, ok := seen[p]; ok {
			return fmt.Errorf("config: %s and %s are the same file '%s'", key, other, p)
		}
		seen[p] = key
	}
	return nil
}

func (c *Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func (c *Config) BookPath() string {
	return c.resolve(c.BookFile)
}

func (c *Config) MemberPath() string {
	return c.resolve(c.MemberFile)
}

func (c *Config) LoanPath() string {
	return c.resolve(c.LoanFile)
}

func (c *Config) BookReportPath() string {
	return c.resolve(c.BookReportFile)
}

func (c *Config) LoanReportPath() string {
	return c.resolve(c.LoanReportFile)
}

// DataPaths returns paths of all data files
func (c *Config) DataPaths() []string {
	return []string{c.BookPath(), c.MemberPath(), c.LoanPath()}
}
