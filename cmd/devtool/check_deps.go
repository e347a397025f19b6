package main

import (
	"fmt"
	"os"
	"strings"
)

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required development dependencies"
}

func (c *CheckDepsCommand) Run(args []string) error {
	PrintHeader("Checking dependencies...")

	hasError := false

	if version, err := getCommandOutput("go", "version"); err == nil {
		// Output: go version go1.21.0 linux/amd64
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			PrintSuccess("Go installed: %s", parts[2])
		} else {
			PrintSuccess("Go installed: %s", version)
		}
	} else {
		PrintError("Go not found! Install from: https://go.dev/dl/")
		hasError = true
	}

	if version, err := getCommandOutput("docker", "--version"); err == nil {
		// Output: Docker version 24.0.5, build ced0996
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			PrintSuccess("Docker installed: %s", strings.TrimRight(parts[2], ","))
		} else {
			PrintSuccess("Docker installed: %s", version)
		}
	} else {
		PrintError("Docker not found! Install from: https://docs.docker.com/get-docker/")
		hasError = true
	}

	if version, err := getCommandOutput("docker", "compose", "version"); err == nil {
		parts := strings.Fields(version)
		if len(parts) >= 4 {
			PrintSuccess("Docker Compose installed: %s", parts[3])
		} else {
			PrintSuccess("Docker Compose installed: %s", version)
		}
	} else {
		PrintWarning("Docker Compose not found")
	}

	if !gooseInstalled() {
		PrintWarning("Goose not found (recommended for dev)")
		PrintInfo("Install: go install github.com/pressly/goose/v3/cmd/goose@latest")
	}

	if hasError {
		return fmt.Errorf("missing required dependencies")
	}

	PrintSuccess("Environment check complete")
	return nil
}

func gooseInstalled() bool {
	if version, err := getCommandOutput("goose", "--version"); err == nil {
		// Output: goose version:v3.15.0
		parts := strings.Fields(version)
		v := strings.TrimPrefix(parts[len(parts)-1], "version:")
		PrintSuccess("Goose installed: %s", v)
		return true
	}

	// Check GOPATH/bin
	home, _ := os.UserHomeDir()
	goosePath := fmt.Sprintf("%s/go/bin/goose", home)
	if version, err := getCommandOutput(goosePath, "--version"); err == nil {
		parts := strings.Fields(version)
		v := strings.TrimPrefix(parts[len(parts)-1], "version:")
		PrintSuccess("Goose installed (in ~/go/bin): %s", v)
		return true
	}

	return false
}
