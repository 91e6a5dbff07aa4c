//go:build mage

// Package main contains Mage build targets for multimodal-researcher.
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
	binDir    = "bin"
	binName   = "multimodal-researcher"
	cmdPkg    = "./cmd/multimodal-researcher"
	outputDir = "output"
)

// Default target when mage runs without arguments.
var Default = Build

// Init creates the output directory and a .secrets/ directory for key files.
func Init() error {
	for _, dir := range []string{outputDir, ".secrets"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	mg.Deps(Init)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}

	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		v = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+v, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, v)
	return nil
}

// Test runs the unit tests. None of them call the Gemini API.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output and generated artifacts.
func Clean() error {
	for _, dir := range []string{binDir, outputDir} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}

// Stats prints Go production and test line counts.
func Stats() error {
	var prod, tests int
	err := filepath.WalkDir(".", func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			tests += n
		} else {
			prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	return nil
}

// countLines counts non-blank lines in the file at path.
func countLines(path string) (int, error) {
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
