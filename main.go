// customchat TUI - A terminal client for the CustomChat chat/blog service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/config"
	"github.com/jeranaias/customchat-tui/internal/session"
	"github.com/jeranaias/customchat-tui/internal/ui/app"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

func main() {
	backendFlag := flag.String("backend", "", "backend base URL (overrides config)")
	configFlag := flag.String("config", "", "path to config file")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("customchat %s (%s)\n", Version, GitCommit)
		return
	}

	if err := run(*backendFlag, *configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(backend, configPath string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("customchat requires an interactive terminal")
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Server.BaseURL = backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return err
	}
	store := session.NewFileStore(filepath.Join(dataDir, "session.json"))
	sess := session.NewManager(store)

	client := api.New(cfg.Server.BaseURL, cfg.Timeout(), sess)
	theme := styles.NewTheme()

	// Markdown rendering is best effort; a nil renderer falls back to
	// plain text bubbles.
	markdown, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(cfg.UI.WrapWidth),
	)
	if err != nil {
		markdown = nil
	}

	p := tea.NewProgram(
		app.New(theme, sess, client, markdown),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
