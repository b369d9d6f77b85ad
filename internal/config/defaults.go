package config

const (
	defaultDevicePort         = 5555
	defaultDeviceTimeout      = 5
	defaultDiscoveryEnabled   = true
	defaultDiscoveryTimeout   = 3
	defaultScreenshotFilename = "ds1054z-scope-display_{ts}.png"
	defaultOverlayRatio       = 0.5
	defaultLogFormat          = "console"
	defaultLogLevel           = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Device: Device{
			Port:           defaultDevicePort,
			TimeoutSeconds: defaultDeviceTimeout,
		},
		Discovery: Discovery{
			Enabled:        defaultDiscoveryEnabled,
			TimeoutSeconds: defaultDiscoveryTimeout,
		},
		Screenshot: Screenshot{
			Filename:     defaultScreenshotFilename,
			OverlayRatio: defaultOverlayRatio,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
