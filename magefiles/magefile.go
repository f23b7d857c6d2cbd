//go:build mage

// Package main contains Mage build targets for eventscan developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "eventscan"
	cmdPkg  = "./cmd/eventscan"

	inboxDir  = "inbox"
	eventsDir = "events"
	cacheFile = ".cache/ocr.db"
)

// sampleConfig is written by Init when no eventscan.yaml exists.
const sampleConfig = `extraction:
  time_window: 50
  title_lead: 30
  title_trail: 20
  default_start: "09:00"
  default_duration: 1h
  languages: [en]
ocr:
  backend: tesseract
  languages: eng
cache:
  path: ` + cacheFile + `
scan:
  output_dir: ` + eventsDir + `
  write_ics: false
logging:
  level: info
  format: console
`

// Init creates the inbox/events directories and a starter eventscan.yaml.
func Init() error {
	for _, dir := range []string{inboxDir, eventsDir, filepath.Dir(cacheFile)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if _, err := os.Stat("eventscan.yaml"); err == nil {
		fmt.Println("eventscan.yaml exists, leaving it alone.")
		return nil
	}
	if err := os.WriteFile("eventscan.yaml", []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("writing eventscan.yaml: %w", err)
	}
	fmt.Println("Wrote eventscan.yaml.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Scan builds the CLI and scans every file in inbox/ into events/.
func Scan() error {
	mg.Deps(Build)

	entries, err := os.ReadDir(inboxDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w (run mage init first)", inboxDir, err)
	}
	args := []string{"scan", "--out", eventsDir}
	for _, e := range entries {
		if !e.IsDir() {
			args = append(args, filepath.Join(inboxDir, e.Name()))
		}
	}
	if len(args) == 3 {
		fmt.Println("inbox/ is empty.")
		return nil
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):          %d\n", docWords)
	return nil
}

// skipDir reports directories Stats ignores.
func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir)
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countNonBlank(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func countNonBlank(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}

// countDocWords counts words in top-level Markdown files.
func countDocWords(root string) (int, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.md"))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", m, err)
		}
		total += len(strings.Fields(string(data)))
	}
	return total, nil
}
