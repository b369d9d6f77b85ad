// Package discovery finds oscilloscopes on the local network via mDNS/DNS-SD.
//
// LXI instruments advertise their raw SCPI socket as _scpi-raw._tcp; a browse
// collects those records for device resolution. Availability is a startup
// capability flag driven by configuration, not a runtime probe: when disabled,
// every lookup fails with ErrUnavailable.
package discovery
