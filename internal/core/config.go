package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

const (
	BaseDirName     = ".config/mantella-launcher"
	ConfigFileName  = "config.hcl"
	JournalFileName = "launcher.db"
)

// Config is the global configuration instance
var Config *Configuration

// Configuration represents the complete launcher configuration
type Configuration struct {
	ConfigPath      string   // Directory containing config and journal files
	Verbose         int      // Verbosity level
	AppName         string   // Product name, used for temp dirs and console title
	Executable      string   // Companion executable file name
	CompanionSubdir string   // Subdirectory of the module dir containing the executable
	LaunchFlag      string   // Flag passed to the companion to mark an integrated launch
	CloudMarkers    []string // Path substrings identifying cloud-synced folders
	AncestorDepth   int      // Levels to ascend from the module path to the install root
	SignalDir       string   // Directory watched for the host's data-loaded signal
	SignalName      string   // File name of the data-loaded signal marker
	JournalPath     string   // Launch journal database path ("" disables the journal)
}

// HCL parsing structs

type hclConfig struct {
	Verbose         int      `hcl:"verbose,optional"`
	AppName         string   `hcl:"app_name,optional"`
	Executable      string   `hcl:"executable,optional"`
	CompanionSubdir string   `hcl:"companion_subdir,optional"`
	LaunchFlag      string   `hcl:"launch_flag,optional"`
	CloudMarkers    []string `hcl:"cloud_markers,optional"`
	AncestorDepth   int      `hcl:"ancestor_depth,optional"`
	SignalDir       string   `hcl:"signal_dir,optional"`
	SignalName      string   `hcl:"signal_name,optional"`
	JournalPath     string   `hcl:"journal_path,optional"`
}

// DefaultConfig returns a Configuration with all defaults applied.
// The defaults match the companion layout the launcher ships with.
func DefaultConfig(configPath string) *Configuration {
	return &Configuration{
		ConfigPath:      configPath,
		AppName:         "Mantella",
		Executable:      "Mantella.exe",
		CompanionSubdir: "MantellaSoftware",
		LaunchFlag:      "--integrated",
		CloudMarkers:    []string{"OneDrive", "Dropbox", "Google Drive"},
		AncestorDepth:   4,
		SignalName:      "data_loaded",
		JournalPath:     filepath.Join(configPath, JournalFileName),
	}
}

// LoadConfig loads the HCL configuration file from the config directory and
// returns a Configuration struct. A missing config file is not an error; the
// defaults are used as-is.
func LoadConfig(configPath string) (*Configuration, error) {
	cfg := DefaultConfig(configPath)

	filename := filepath.Join(configPath, ConfigFileName)
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	var hclCfg hclConfig
	if err := hclsimple.DecodeFile(filename, nil, &hclCfg); err != nil {
		return nil, fmt.Errorf("failed to parse HCL config: %w", err)
	}

	if hclCfg.Verbose != 0 {
		cfg.Verbose = hclCfg.Verbose
	}
	if hclCfg.AppName != "" {
		cfg.AppName = hclCfg.AppName
	}
	if hclCfg.Executable != "" {
		cfg.Executable = hclCfg.Executable
	}
	if hclCfg.CompanionSubdir != "" {
		cfg.CompanionSubdir = hclCfg.CompanionSubdir
	}
	if hclCfg.LaunchFlag != "" {
		cfg.LaunchFlag = hclCfg.LaunchFlag
	}
	if hclCfg.CloudMarkers != nil {
		cfg.CloudMarkers = hclCfg.CloudMarkers
	}
	if hclCfg.AncestorDepth != 0 {
		cfg.AncestorDepth = hclCfg.AncestorDepth
	}
	if hclCfg.SignalDir != "" {
		cfg.SignalDir = hclCfg.SignalDir
	}
	if hclCfg.SignalName != "" {
		cfg.SignalName = hclCfg.SignalName
	}
	if hclCfg.JournalPath != "" {
		cfg.JournalPath = hclCfg.JournalPath
	}

	return cfg, nil
}

// DefaultConfigPath returns the per-user config directory.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return BaseDirName
	}
	return filepath.Join(homeDir, BaseDirName)
}
