package dso_test

import (
	"errors"
	"fmt"
	"testing"

	"ds1054z/internal/dso"
)

// fakeTransport scripts query responses and records writes.
type fakeTransport struct {
	replies map[string]string
	raw     map[string][]byte
	writes  []string
	queries []string
}

func (f *fakeTransport) Write(cmd string) error {
	f.writes = append(f.writes, cmd)
	return nil
}

func (f *fakeTransport) Query(cmd string) (string, error) {
	f.queries = append(f.queries, cmd)
	reply, ok := f.replies[cmd]
	if !ok {
		return "", fmt.Errorf("unscripted query %q", cmd)
	}
	return reply, nil
}

func (f *fakeTransport) QueryRaw(cmd string) ([]byte, error) {
	f.queries = append(f.queries, cmd)
	if reply, ok := f.raw[cmd]; ok {
		return reply, nil
	}
	reply, ok := f.replies[cmd]
	if !ok {
		return nil, fmt.Errorf("unscripted raw query %q", cmd)
	}
	return []byte(reply), nil
}

func (f *fakeTransport) Close() error { return nil }

func TestControlCommandsIssueExpectedWrites(t *testing.T) {
	transport := &fakeTransport{}
	device := dso.New(transport, nil)

	steps := []struct {
		name string
		call func() error
		want string
	}{
		{"run", device.Run, ":RUN"},
		{"stop", device.Stop, ":STOP"},
		{"single", device.Single, ":SINGle"},
		{"tforce", device.TForce, ":TFORce"},
	}
	for _, step := range steps {
		if err := step.call(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
	}
	if len(transport.writes) != len(steps) {
		t.Fatalf("writes = %v", transport.writes)
	}
	for i, step := range steps {
		if transport.writes[i] != step.want {
			t.Fatalf("write %d = %q, want %q", i, transport.writes[i], step.want)
		}
	}
}

func TestMemoryDepthNumeric(t *testing.T) {
	transport := &fakeTransport{replies: map[string]string{"ACQ:MDEP?": "12000"}}
	device := dso.New(transport, nil)

	depth, err := device.MemoryDepth()
	if err != nil {
		t.Fatalf("MemoryDepth: %v", err)
	}
	if depth != 12000 {
		t.Fatalf("MemoryDepth = %v, want 12000", depth)
	}
}

func TestMemoryDepthAutoDerivesFromRateAndScale(t *testing.T) {
	transport := &fakeTransport{replies: map[string]string{
		"ACQ:MDEP?": "AUTO",
		"ACQ:SRAT?": "1.0e9",
		"TIM:SCAL?": "0.001",
	}}
	device := dso.New(transport, nil)

	depth, err := device.MemoryDepth()
	if err != nil {
		t.Fatalf("MemoryDepth: %v", err)
	}
	// 12 divisions * 1 ms/div * 1 GSa/s
	if depth != 12e6 {
		t.Fatalf("MemoryDepth = %v, want 12e6", depth)
	}
}

func TestDisplayedChannels(t *testing.T) {
	transport := &fakeTransport{replies: map[string]string{
		":CHAN1:DISP?": "1",
		":CHAN2:DISP?": "0",
		":CHAN3:DISP?": "ON",
		":CHAN4:DISP?": "OFF",
	}}
	device := dso.New(transport, nil)

	channels, err := device.DisplayedChannels()
	if err != nil {
		t.Fatalf("DisplayedChannels: %v", err)
	}
	if len(channels) != 2 || channels[0] != "CHAN1" || channels[1] != "CHAN3" {
		t.Fatalf("DisplayedChannels = %v", channels)
	}
}

func TestPropertyRegistry(t *testing.T) {
	transport := &fakeTransport{replies: map[string]string{
		"*IDN?":     "RIGOL TECHNOLOGIES,DS1054Z,DS1ZA0001,00.04.04",
		"ACQ:MDEP?": "6000000",
	}}
	device := dso.New(transport, nil)

	idn, err := device.Property("idn")
	if err != nil {
		t.Fatalf("Property idn: %v", err)
	}
	if len(idn) != 1 || idn[0] != "RIGOL TECHNOLOGIES,DS1054Z,DS1ZA0001,00.04.04" {
		t.Fatalf("Property idn = %v", idn)
	}

	depth, err := device.Property("memory_depth")
	if err != nil {
		t.Fatalf("Property memory_depth: %v", err)
	}
	if len(depth) != 1 || depth[0] != "6000000" {
		t.Fatalf("Property memory_depth = %v", depth)
	}
}

func TestPropertyUnknownName(t *testing.T) {
	device := dso.New(&fakeTransport{}, nil)

	_, err := device.Property("bogus")
	if !errors.Is(err, dso.ErrUnknownProperty) {
		t.Fatalf("expected ErrUnknownProperty, got %v", err)
	}
	for _, name := range dso.PropertyNames() {
		if name == "bogus" {
			t.Fatal("bogus should not be registered")
		}
	}
}

func TestSessionLockExcludesSecondHolder(t *testing.T) {
	lock, err := dso.AcquireSessionLock("127.0.0.1:59991")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer lock.Release()

	if _, err := dso.AcquireSessionLock("127.0.0.1:59991"); err == nil {
		t.Fatal("expected second acquire to fail while lock is held")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	relock, err := dso.AcquireSessionLock("127.0.0.1:59991")
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	_ = relock.Release()
}
