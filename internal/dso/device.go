package dso

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ds1054z/internal/logging"
)

// hGrid is the number of horizontal divisions on the DS1000Z display, used
// to derive the memory depth when the scope reports AUTO.
const hGrid = 12

// Transport is the synchronous request/response contract the device is
// driven through. Implementations must not allow a second exchange to start
// before the first returns.
type Transport interface {
	Write(cmd string) error
	Query(cmd string) (string, error)
	QueryRaw(cmd string) ([]byte, error)
	Close() error
}

// Device is one live session with a DS1054Z-family scope.
type Device struct {
	transport Transport
	logger    *slog.Logger
}

// New wraps a transport. A nil logger disables logging.
func New(transport Transport, logger *slog.Logger) *Device {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Device{
		transport: transport,
		logger:    logger.With(slog.String("session", uuid.NewString())),
	}
}

// Close releases the underlying transport.
func (d *Device) Close() error {
	return d.transport.Close()
}

// Write sends a command that produces no response.
func (d *Device) Write(cmd string) error {
	d.logger.Debug("scpi write", slog.String("cmd", cmd))
	return d.transport.Write(cmd)
}

// Query sends a command and returns the text response.
func (d *Device) Query(cmd string) (string, error) {
	d.logger.Debug("scpi query", slog.String("cmd", cmd))
	resp, err := d.transport.Query(cmd)
	if err != nil {
		return "", err
	}
	d.logger.Debug("scpi response", slog.String("cmd", cmd), slog.Int("bytes", len(resp)))
	return resp, nil
}

// QueryRaw sends a command and returns the response bytes, binary-safe.
func (d *Device) QueryRaw(cmd string) ([]byte, error) {
	d.logger.Debug("scpi query raw", slog.String("cmd", cmd))
	resp, err := d.transport.QueryRaw(cmd)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("scpi response", slog.String("cmd", cmd), slog.Int("bytes", len(resp)))
	return resp, nil
}

// Run starts continuous acquisition.
func (d *Device) Run() error { return d.Write(":RUN") }

// Stop halts acquisition.
func (d *Device) Stop() error { return d.Write(":STOP") }

// Single arms a single-shot acquisition.
func (d *Device) Single() error { return d.Write(":SINGle") }

// TForce forces a trigger event.
func (d *Device) TForce() error { return d.Write(":TFORce") }

// IDN returns the *IDN? identification string.
func (d *Device) IDN() (string, error) {
	return d.Query("*IDN?")
}

// DisplayData captures the current display as an image dump (BMP on stock
// firmware), with the block framing already stripped.
func (d *Device) DisplayData() ([]byte, error) {
	return d.QueryRaw(":DISP:DATA?")
}

// MemoryDepth returns the acquisition memory depth in samples. When the
// scope reports AUTO the depth is derived from the sample rate and the
// timebase scale across the full grid.
func (d *Device) MemoryDepth() (float64, error) {
	mdep, err := d.Query("ACQ:MDEP?")
	if err != nil {
		return 0, err
	}
	if strings.EqualFold(mdep, "AUTO") {
		srate, err := d.queryFloat("ACQ:SRAT?")
		if err != nil {
			return 0, err
		}
		scale, err := d.queryFloat("TIM:SCAL?")
		if err != nil {
			return 0, err
		}
		return hGrid * scale * srate, nil
	}
	depth, err := strconv.ParseFloat(mdep, 64)
	if err != nil {
		return 0, fmt.Errorf("parse memory depth %q: %w", mdep, err)
	}
	return depth, nil
}

// SampleRate returns the current sample rate in Sa/s.
func (d *Device) SampleRate() (float64, error) {
	return d.queryFloat("ACQ:SRAT?")
}

// TimebaseScale returns the main timebase scale in s/div.
func (d *Device) TimebaseScale() (float64, error) {
	return d.queryFloat("TIM:SCAL?")
}

// TimebaseOffset returns the main timebase offset in seconds.
func (d *Device) TimebaseOffset() (float64, error) {
	return d.queryFloat("TIM:OFFS?")
}

// DisplayedChannels reports which of CHAN1..CHAN4 are currently shown.
func (d *Device) DisplayedChannels() ([]string, error) {
	channels := make([]string, 0, 4)
	for n := 1; n <= 4; n++ {
		name := fmt.Sprintf("CHAN%d", n)
		resp, err := d.Query(fmt.Sprintf(":%s:DISP?", name))
		if err != nil {
			return nil, err
		}
		if resp == "1" || strings.EqualFold(resp, "ON") {
			channels = append(channels, name)
		}
	}
	return channels, nil
}

// Running reports whether acquisition is active (trigger status != STOP).
func (d *Device) Running() (bool, error) {
	status, err := d.Query(":TRIG:STAT?")
	if err != nil {
		return false, err
	}
	return !strings.EqualFold(status, "STOP"), nil
}

func (d *Device) queryFloat(cmd string) (float64, error) {
	resp, err := d.Query(cmd)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(resp, 64)
	if err != nil {
		return 0, fmt.Errorf("parse response %q to %q: %w", resp, cmd, err)
	}
	return value, nil
}
