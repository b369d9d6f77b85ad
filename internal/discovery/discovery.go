package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"ds1054z/internal/config"
	"ds1054z/internal/logging"
)

// serviceName is the DNS-SD service LXI instruments register their raw SCPI
// socket under.
const serviceName = "_scpi-raw._tcp"

var (
	// ErrUnavailable means discovery support is switched off in config.
	ErrUnavailable = errors.New("discovery is unavailable (set discovery.enabled = true)")

	// ErrNoDevice means a browse completed without finding any instrument.
	ErrNoDevice = errors.New("no oscilloscope found on the local network")
)

// Record is one discovered instrument.
type Record struct {
	Model string
	IP    string
}

// AmbiguousError reports that more than one instrument answered, carrying
// every candidate so the caller can present them.
type AmbiguousError struct {
	Records []Record
}

func (e *AmbiguousError) Error() string {
	names := make([]string, 0, len(e.Records))
	for _, record := range e.Records {
		names = append(names, fmt.Sprintf("%s (%s)", record.Model, record.IP))
	}
	return fmt.Sprintf("%d oscilloscopes found, pass an address to choose one: %s", len(e.Records), strings.Join(names, ", "))
}

// Browser performs mDNS lookups according to configuration.
type Browser struct {
	enabled bool
	timeout time.Duration
	logger  *slog.Logger
}

// NewBrowser builds a Browser from config. A nil logger disables logging.
func NewBrowser(cfg *config.Config, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = logging.NewNop()
	}
	enabled := true
	timeout := 3 * time.Second
	if cfg != nil {
		enabled = cfg.Discovery.Enabled
		timeout = time.Duration(cfg.Discovery.TimeoutSeconds) * time.Second
	}
	return &Browser{enabled: enabled, timeout: timeout, logger: logger}
}

// Available reports whether discovery may be used at all.
func (b *Browser) Available() bool {
	return b.enabled
}

// Browse collects every instrument advertising a raw SCPI socket, waiting the
// configured timeout for answers. Records come back sorted by IP for stable
// output.
func (b *Browser) Browse(ctx context.Context) ([]Record, error) {
	if !b.enabled {
		return nil, ErrUnavailable
	}

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("start mDNS resolver: %w", err)
	}

	browseCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan []Record, 1)
	go func() {
		var records []Record
		for entry := range entries {
			record, ok := recordFromEntry(entry)
			if !ok {
				continue
			}
			b.logger.Debug("discovered instrument",
				slog.String("model", record.Model),
				slog.String("ip", record.IP))
			records = append(records, record)
		}
		done <- records
	}()

	if err := resolver.Browse(browseCtx, serviceName, "local.", entries); err != nil {
		return nil, fmt.Errorf("browse %s: %w", serviceName, err)
	}
	<-browseCtx.Done()
	records := <-done

	sort.Slice(records, func(i, j int) bool { return records[i].IP < records[j].IP })
	return records, nil
}

// Select applies the resolution policy to a browse result: exactly one record
// wins, zero is ErrNoDevice, several is an AmbiguousError.
func Select(records []Record) (Record, error) {
	switch len(records) {
	case 0:
		return Record{}, ErrNoDevice
	case 1:
		return records[0], nil
	default:
		return Record{}, &AmbiguousError{Records: records}
	}
}

func recordFromEntry(entry *zeroconf.ServiceEntry) (Record, bool) {
	if entry == nil || len(entry.AddrIPv4) == 0 {
		return Record{}, false
	}
	model := strings.TrimSpace(entry.Instance)
	if model == "" {
		model = entry.HostName
	}
	return Record{Model: model, IP: entry.AddrIPv4[0].String()}, true
}
