package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"golang.org/x/image/bmp"

	"ds1054z/internal/testsupport"
)

func displayDumpHandler(t *testing.T) testsupport.Handler {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	dump := testsupport.Block(buf.Bytes())
	return func(cmd string) []byte {
		if cmd == ":DISP:DATA?" {
			return dump
		}
		return nil
	}
}

func TestSaveScreenDefaultFilename(t *testing.T) {
	env := setupCLITestEnv(t, displayDumpHandler(t))
	origDir, wdErr := os.Getwd()
	if wdErr != nil {
		t.Fatalf("getwd: %v", wdErr)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	_, _, err := env.runCLI(t, []string{"save-screen", "--overlay", "0.6"}, nil)
	if err != nil {
		t.Fatalf("save-screen: %v", err)
	}

	entries, err := os.ReadDir(".")
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	pattern := regexp.MustCompile(`^ds1054z-scope-display_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.png$`)
	var found string
	for _, entry := range entries {
		if pattern.MatchString(entry.Name()) {
			found = entry.Name()
		}
	}
	if found == "" {
		t.Fatalf("no screenshot matching default template, dir: %v", entries)
	}

	file, err := os.Open(found)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer file.Close()
	if _, err := png.Decode(file); err != nil {
		t.Fatalf("screenshot is not valid PNG: %v", err)
	}
}

func TestSaveScreenExplicitTemplate(t *testing.T) {
	env := setupCLITestEnv(t, displayDumpHandler(t))
	dir := t.TempDir()

	template := filepath.Join(dir, "capture_{ts}.png")
	_, _, err := env.runCLI(t, []string{"save-screen", "--filename", template}, nil)
	if err != nil {
		t.Fatalf("save-screen: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file, got %v", entries)
	}
	pattern := regexp.MustCompile(`^capture_\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.png$`)
	if !pattern.MatchString(entries[0].Name()) {
		t.Fatalf("filename = %q", entries[0].Name())
	}
}

func TestSaveScreenVerboseReportsPath(t *testing.T) {
	env := setupCLITestEnv(t, displayDumpHandler(t))
	dir := t.TempDir()

	template := filepath.Join(dir, "shot.png")
	stdout, _, err := env.runCLI(t, []string{"--verbose", "save-screen", "--filename", template}, nil)
	if err != nil {
		t.Fatalf("save-screen: %v", err)
	}
	requireContains(t, stdout, template)
}
