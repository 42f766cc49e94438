package config

const (
	defaultCatalogPath = "SimpleLoop/dialogue_catalog.json"
	defaultVoicesDir   = "voices"
	defaultExtension   = ".mp3"
	defaultPreviewsDir = "previews"
	defaultScanWorkers = 4
	defaultReadyStatus = "✅ Ready"
	defaultReadyColor  = "Green"
	defaultPathStyle   = PathStyleAbsolute
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

const (
	PathStyleAbsolute = "absolute"
	PathStyleRelative = "relative"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Catalog: defaultCatalogPath,
			Voices:  defaultVoicesDir,
		},
		Inventory: Inventory{
			Extension:    defaultExtension,
			ExcludedDirs: []string{defaultPreviewsDir},
			ScanWorkers:  defaultScanWorkers,
		},
		Repair: Repair{
			ReadyStatus: defaultReadyStatus,
			ReadyColor:  defaultReadyColor,
			PathStyle:   defaultPathStyle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
