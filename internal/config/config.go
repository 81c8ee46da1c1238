package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// defaultConfigRelPath is where the container build places config.yaml,
	// relative to the project root
	defaultConfigRelPath = ".devcontainer/container/config.yaml"

	// envPrefix namespaces environment overrides (DEVINIT_*)
	envPrefix = "DEVINIT"
)

// Manager handles devinit configuration
type Manager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
}

// NewManager creates a new configuration manager.
// An empty configPath falls back to <project root>/.devcontainer/container/config.yaml.
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &Config{},
	}
}

// Load loads the configuration from file, interpolating ${VAR} and
// ${VAR:-default} placeholders against the environment before parsing.
// A missing file is not an error; defaults apply.
func (m *Manager) Load() (*Config, error) {
	path := m.configPath
	if path == "" {
		path = filepath.Join(ProjectRoot(), defaultConfigRelPath)
	}

	m.viper.SetConfigType("yaml")
	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	// Initialize config to ensure defaults are set even for empty configs
	m.config = &Config{}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, apply defaults and return
			m.applyDefaults()
			return m.config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	interpolated := InterpolateEnv(string(raw))
	if err := m.viper.ReadConfig(strings.NewReader(interpolated)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.applyDefaults()

	return m.config, nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// RequiredEnv returns the names of environment variables that are required
// for the given section but missing or empty in the current environment.
func (m *Manager) RequiredEnv(section string) []string {
	key := section + ".required_env"
	required := m.viper.GetStringSlice(key)

	missing := make([]string, 0)
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}

	return missing
}

// applyDefaults sets default values for configuration
func (m *Manager) applyDefaults() {
	if m.config == nil {
		return
	}

	if m.config.Defaults.Timeout == 0 {
		m.config.Defaults.Timeout = 30 * time.Second
	}

	if m.config.Defaults.OutputFormat == "" {
		m.config.Defaults.OutputFormat = "table"
	}

	if m.config.Build.Ccache.MaxSize == "" {
		m.config.Build.Ccache.MaxSize = "5G"
	}

	if m.config.Workspace.Folder == "" {
		m.config.Workspace.Folder = "workspace"
	}

	if m.config.Workspace.Project == "" {
		m.config.Workspace.Project = "python-slim"
	}

	if m.config.GitHub.Token == "" {
		m.config.GitHub.Token = os.Getenv("GITHUB_PAT")
	}

	if m.config.GitHub.Username == "" {
		m.config.GitHub.Username = os.Getenv("GITHUB_USERNAME")
	}
}

// ProjectRoot determines the project root directory.
// It combines WORKSPACE_FOLDER and PROJECT_NAME when both are set and the
// resulting path exists, otherwise it falls back to the working directory.
func ProjectRoot() string {
	workspace := os.Getenv("WORKSPACE_FOLDER")
	project := os.Getenv("PROJECT_NAME")

	if workspace != "" && project != "" {
		root := filepath.Join("/", workspace, project)
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return root
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
