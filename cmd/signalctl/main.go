package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anggasct/signalctl"
	"github.com/anggasct/signalctl/shell"
	"github.com/google/uuid"
)

const (
	configEnv   = "SIGNALCTL_CONFIG"
	configLocal = "signalctl.yaml"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	session, err := shell.Setup(cfg, os.Stdin, os.Stdout, os.Stderr, shell.Options{
		ID: uuid.New().String(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := shell.New(session).Run(context.Background()); err != nil {
		session.Logger.Errorf("session ended: %v", err)
	}
	os.Exit(0)
}

// loadConfig prefers $SIGNALCTL_CONFIG, then signalctl.yaml in the working
// directory, then the built-in defaults
func loadConfig() (*signalctl.Config, error) {
	if path := os.Getenv(configEnv); path != "" {
		return signalctl.LoadConfig(path)
	}
	if _, err := os.Stat(configLocal); err == nil {
		return signalctl.LoadConfig(configLocal)
	}
	return signalctl.DefaultConfig(), nil
}
