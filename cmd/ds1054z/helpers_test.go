package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"ds1054z/internal/testsupport"
)

type cliTestEnv struct {
	inst       *testsupport.Instrument
	configPath string
	ctx        *commandContext
}

// setupCLITestEnv starts a stub instrument and writes a config file pointing
// the CLI straight at it so commands never hit discovery.
func setupCLITestEnv(t *testing.T, handler testsupport.Handler) *cliTestEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DS1054Z_ADDR", "")

	inst := testsupport.NewInstrument(t, handler)

	configPath := filepath.Join(home, "config.toml")
	contents := fmt.Sprintf(`
[device]
addr = %q
port = %d
timeout_seconds = 2
`, inst.Host(), inst.Port())
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	verbose, debug, config := false, false, ""
	return &cliTestEnv{
		inst:       inst,
		configPath: configPath,
		ctx:        newCommandContext(&verbose, &debug, &config),
	}
}

// setDeviceConfig rewrites the env's config file with a different device
// target. An empty addr forces the CLI through discovery.
func (env *cliTestEnv) setDeviceConfig(t *testing.T, addr string, port int) {
	t.Helper()
	contents := fmt.Sprintf(`
[device]
addr = %q
port = %d
timeout_seconds = 2
`, addr, port)
	if err := os.WriteFile(env.configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
}

// runCLI executes the command tree in-process and captures its output.
func (env *cliTestEnv) runCLI(t *testing.T, args []string, stdin io.Reader) (string, string, error) {
	t.Helper()

	cmd := newRootCommandWithContext(env.ctx)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !bytes.Contains([]byte(haystack), []byte(needle)) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}
