package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"ds1054z/internal/config"
	"ds1054z/internal/discovery"
	"ds1054z/internal/dso"
	"ds1054z/internal/logging"
	"ds1054z/internal/scpi"
)

type commandContext struct {
	verboseFlag *bool
	debugFlag   *bool
	configFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	// browse is swappable so tests can script discovery results.
	browse func(ctx context.Context) ([]discovery.Record, error)
}

func newCommandContext(verboseFlag, debugFlag *bool, configFlag *string) *commandContext {
	return &commandContext{
		verboseFlag: verboseFlag,
		debugFlag:   debugFlag,
		configFlag:  configFlag,
	}
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		debug := c.debugFlag != nil && *c.debugFlag
		logger, err := logging.NewFromConfig(cfg, debug)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) discoveryBrowse(ctx context.Context) ([]discovery.Record, error) {
	if c.browse != nil {
		return c.browse(ctx)
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return discovery.NewBrowser(cfg, c.ensureLogger()).Browse(ctx)
}

// resolveAddr produces exactly one host:port target: the explicit argument
// verbatim, then config/environment, then a single-shot discovery browse.
func (c *commandContext) resolveAddr(cmd *cobra.Command, deviceArg string) (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}

	if addr := strings.TrimSpace(deviceArg); addr != "" {
		return hostPort(addr, cfg.Device.Port), nil
	}
	if cfg.Device.Addr != "" {
		return hostPort(cfg.Device.Addr, cfg.Device.Port), nil
	}

	records, err := c.discoveryBrowse(cmd.Context())
	if err != nil {
		return "", err
	}
	record, err := discovery.Select(records)
	if err != nil {
		var ambiguous *discovery.AmbiguousError
		if errors.As(err, &ambiguous) {
			fmt.Fprintln(cmd.ErrOrStderr(), renderRecordTable(ambiguous.Records))
		}
		return "", err
	}
	if c.verbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using the %s at %s.\n", record.Model, record.IP)
	}
	return hostPort(record.IP, cfg.Device.Port), nil
}

// withDevice resolves the target, takes the session lock, dials, and hands a
// live device to fn. Exactly one session exists for the duration of fn.
func (c *commandContext) withDevice(cmd *cobra.Command, deviceArg string, fn func(*dso.Device) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	addr, err := c.resolveAddr(cmd, deviceArg)
	if err != nil {
		return err
	}

	lock, err := dso.AcquireSessionLock(addr)
	if err != nil {
		return err
	}
	defer lock.Release()

	client, err := scpi.Dial(cmd.Context(), addr, scpi.Options{
		Timeout: cfg.DeviceTimeout(),
	})
	if err != nil {
		return err
	}
	defer client.Close()

	logger := c.ensureLogger()
	logger.Info("session opened", slog.String("addr", addr))
	return fn(dso.New(client, logger))
}

// optionalDevice extracts the trailing optional device argument.
func optionalDevice(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

func hostPort(addr string, port int) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(port))
}
