// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelout/main.go
// Summary: texelout command line entry point.
// Usage: `texelout run [layout.toml]` streams commands into panes,
// `texelout demo` runs the two-producer sample.

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	logFile    string
	driverName string
	recordPath string
	dumpFrame  bool

	logOutput *os.File
)

var rootCmd = &cobra.Command{
	Use:   "texelout",
	Short: "Split the terminal into panes fed by concurrent producers",
	Long: `texelout divides the terminal into up to six panes arranged as a
binary tree. Each pane shows the newest lines written to it.

Layouts are TOML or YAML files declaring panes and the command whose
output feeds each one. Press Ctrl-C to quit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logFile == "" {
			log.SetOutput(io.Discard)
			return nil
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logOutput = f
		log.SetOutput(f)
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logOutput != nil {
			logOutput.Close()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logFile, "log-file", "", "Append diagnostics to this file (default: discarded)")
	flags.StringVar(&driverName, "driver", "ansi", "Screen driver: ansi or tcell")
	flags.StringVar(&recordPath, "record", "", "Record every flushed line into this SQLite database")
	flags.BoolVar(&dumpFrame, "dump", false, "Print the final frame after restoring the terminal")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
