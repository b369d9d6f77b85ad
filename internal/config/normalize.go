package config

import (
	"os"
	"strings"
)

// normalize trims user-supplied values and applies environment fallbacks.
func (c *Config) normalize() {
	c.Device.Addr = strings.TrimSpace(c.Device.Addr)
	if c.Device.Addr == "" {
		c.Device.Addr = strings.TrimSpace(os.Getenv("DS1054Z_ADDR"))
	}
	if c.Device.TimeoutSeconds <= 0 {
		c.Device.TimeoutSeconds = defaultDeviceTimeout
	}
	if c.Discovery.TimeoutSeconds <= 0 {
		c.Discovery.TimeoutSeconds = defaultDiscoveryTimeout
	}

	c.Screenshot.Filename = strings.TrimSpace(c.Screenshot.Filename)
	if c.Screenshot.Filename == "" {
		c.Screenshot.Filename = defaultScreenshotFilename
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
