package minecraft

// ResolvedInstallation is the flattened result of merging an inheritance chain.
// It is treated as immutable after Resolve returns.
type ResolvedInstallation struct {
	// ID is the id of the leaf version
	ID string `json:"id" yaml:"id"`
	// JarID is the version whose client jar is launched
	JarID       string `json:"jarId" yaml:"jarId"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Time        string `json:"time,omitempty" yaml:"time,omitempty"`
	ReleaseTime string `json:"releaseTime,omitempty" yaml:"releaseTime,omitempty"`
	MainClass   string `json:"mainClass" yaml:"mainClass"`

	AssetIndex *AssetIndexRef `json:"assetIndex" yaml:"assetIndex"`
	// AssetsID is the id of the asset index (`assets` or `assetIndex.id`)
	AssetsID string `json:"assets" yaml:"assets"`

	Downloads map[string]Artifact `json:"downloads" yaml:"downloads"`
	Libraries []ResolvedLibrary   `json:"libraries" yaml:"libraries"`
	Arguments ResolvedArguments   `json:"arguments" yaml:"arguments"`
	// Legacy is set when the arguments come from `minecraftArguments`
	Legacy bool `json:"legacy,omitempty" yaml:"legacy,omitempty"`
	// QuickPlay is set when the version understands `--quickPlayMultiplayer`
	QuickPlay bool `json:"quickPlay,omitempty" yaml:"quickPlay,omitempty"`

	Logging                map[string]LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
	JavaVersion            *JavaVersion             `json:"javaVersion,omitempty" yaml:"javaVersion,omitempty"`
	MinimumLauncherVersion int                      `json:"minimumLauncherVersion" yaml:"minimumLauncherVersion"`

	// InheritanceChain lists the ancestors, closest parent first
	InheritanceChain []string `json:"inheritanceChain" yaml:"inheritanceChain"`
	// DescriptorPaths are the files the chain was read from, leaf first
	DescriptorPaths []string `json:"descriptorPaths,omitempty" yaml:"descriptorPaths,omitempty"`
}

// ResolvedArguments are the arguments after rule evaluation
type ResolvedArguments struct {
	Game []string `json:"game" yaml:"game"`
	JVM  []string `json:"jvm" yaml:"jvm"`
}

// ClientDownload returns the client jar download
func (r *ResolvedInstallation) ClientDownload() (Artifact, bool) {
	client, ok := r.Downloads["client"]
	return client, ok
}

// ClientLogging returns the client logging config if it declares a file
func (r *ResolvedInstallation) ClientLogging() (LoggingConfig, bool) {
	cfg, ok := r.Logging["client"]
	if !ok || cfg.File.ID == "" {
		return LoggingConfig{}, false
	}
	return cfg, true
}

// NativeLibraries returns all native libraries
func (r *ResolvedInstallation) NativeLibraries() []ResolvedLibrary {
	natives := make([]ResolvedLibrary, 0)
	for _, lib := range r.Libraries {
		if lib.IsNative {
			natives = append(natives, lib)
		}
	}
	return natives
}

// JavaMajorVersion returns the required major java version or 0 if unknown
func (r *ResolvedInstallation) JavaMajorVersion() int {
	if r.JavaVersion == nil {
		return 0
	}
	return r.JavaVersion.MajorVersion
}
