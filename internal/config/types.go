package config

import "time"

// Config represents the devcontainer configuration file structure
type Config struct {
	// Build holds build-cache, resource and GPU settings
	Build BuildConfig `mapstructure:"build" yaml:"build,omitempty"`

	// GitHub holds repository provisioning settings
	GitHub GitHubConfig `mapstructure:"github" yaml:"github,omitempty"`

	// Runtime holds interpreter optimization settings
	Runtime RuntimeConfig `mapstructure:"runtime" yaml:"runtime,omitempty"`

	// Workspace holds scaffolding settings
	Workspace WorkspaceConfig `mapstructure:"workspace" yaml:"workspace,omitempty"`

	// Defaults contains default settings for operations
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults,omitempty"`
}

// BuildConfig configures caches and resource overrides for builds
type BuildConfig struct {
	// Paths locates cache directories
	Paths PathsConfig `mapstructure:"paths" yaml:"paths,omitempty"`

	// Ccache configures the compiler cache
	Ccache CcacheConfig `mapstructure:"ccache" yaml:"ccache,omitempty"`

	// Resources overrides detected system resources
	Resources ResourcesConfig `mapstructure:"resources" yaml:"resources,omitempty"`

	// CUDA configures the GPU compute cache
	CUDA CUDAConfig `mapstructure:"cuda" yaml:"cuda,omitempty"`
}

// PathsConfig locates cache directories used during builds
type PathsConfig struct {
	// BuildCache is the ccache directory
	BuildCache string `mapstructure:"build_cache" yaml:"build_cache,omitempty"`

	// GPUCache is the CUDA kernel cache directory
	GPUCache string `mapstructure:"gpu_cache" yaml:"gpu_cache,omitempty"`
}

// CcacheConfig configures the compiler cache
type CcacheConfig struct {
	// MaxSize is the ccache size limit (e.g. "5G")
	MaxSize string `mapstructure:"max_size" yaml:"max_size,omitempty"`
}

// ResourcesConfig overrides detected system resources
type ResourcesConfig struct {
	// DefaultCores overrides the detected core count when > 0
	DefaultCores int `mapstructure:"default_cores" yaml:"default_cores,omitempty"`

	// DefaultThreads overrides the detected thread count when > 0
	DefaultThreads int `mapstructure:"default_threads" yaml:"default_threads,omitempty"`

	// RAMDiskSizeMB overrides the reported RAM size when > 0
	RAMDiskSizeMB int `mapstructure:"ram_disk_size" yaml:"ram_disk_size,omitempty"`

	// BuildJobs fixes the parallel build job count when > 0
	BuildJobs int `mapstructure:"build_jobs" yaml:"build_jobs,omitempty"`
}

// CUDAConfig configures the GPU compute cache
type CUDAConfig struct {
	// CacheMaxSize is the CUDA_CACHE_MAXSIZE value in bytes
	CacheMaxSize string `mapstructure:"cache_maxsize" yaml:"cache_maxsize,omitempty"`
}

// GitHubConfig configures repository provisioning
type GitHubConfig struct {
	// Token is the access token; falls back to GITHUB_PAT
	Token string `mapstructure:"token" yaml:"token,omitempty"`

	// Username is the account owning the local repositories
	Username string `mapstructure:"username" yaml:"username,omitempty"`

	// Email is used for the global git identity
	Email string `mapstructure:"email" yaml:"email,omitempty"`

	// Repositories names the repositories to provision
	Repositories RepositoriesConfig `mapstructure:"repositories" yaml:"repositories,omitempty"`
}

// RepositoriesConfig names the repositories to provision
type RepositoriesConfig struct {
	// Solution is the owner/repo spec of the solution repository
	Solution string `mapstructure:"solution" yaml:"solution,omitempty"`

	// Local lists repository names under the configured username
	Local []string `mapstructure:"local" yaml:"local,omitempty"`
}

// RuntimeConfig configures interpreter optimization
type RuntimeConfig struct {
	// Exec is the interpreter to optimize; falls back to PYTHON_EXEC
	Exec string `mapstructure:"exec" yaml:"exec,omitempty"`

	// Compiler sets CC/CXX/MAKEFLAGS for native extension builds
	Compiler CompilerConfig `mapstructure:"compiler" yaml:"compiler,omitempty"`

	// Environment holds interpreter hardening variables
	Environment map[string]string `mapstructure:"environment" yaml:"environment,omitempty"`
}

// CompilerConfig sets toolchain environment variables
type CompilerConfig struct {
	CC        string `mapstructure:"cc" yaml:"cc,omitempty"`
	CXX       string `mapstructure:"cxx" yaml:"cxx,omitempty"`
	MakeFlags string `mapstructure:"makeflags" yaml:"makeflags,omitempty"`
}

// WorkspaceConfig configures the scaffolding generator
type WorkspaceConfig struct {
	// Folder is the workspace mount name (WORKSPACE_FOLDER)
	Folder string `mapstructure:"folder" yaml:"folder,omitempty"`

	// Project is the project directory name (PROJECT_NAME)
	Project string `mapstructure:"project" yaml:"project,omitempty"`

	// StructureFile points at a YAML tree description; empty uses the
	// embedded default structure
	StructureFile string `mapstructure:"structure_file" yaml:"structure_file,omitempty"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Timeout for batch operations
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`

	// Parallel is the number of concurrent operations (0 = auto-size)
	Parallel int `mapstructure:"parallel" yaml:"parallel,omitempty"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `mapstructure:"outputFormat" yaml:"outputFormat,omitempty"`

	// NoColor disables colored output
	NoColor bool `mapstructure:"noColor" yaml:"noColor,omitempty"`
}
