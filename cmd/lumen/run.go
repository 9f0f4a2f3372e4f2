package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/driver"
	"lumen/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Check a single module and report whether it defines a valid entry point",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	dir := filepath.Dir(path)
	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	strs := source.NewInterner()
	files := source.NewFileSetWithBase(dir)
	fileID, err := files.Load(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	mod, err := defaultFrontend.Parse(strs, path, fileID, files.Get(fileID).Content)
	if err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}

	diags := diag.NewBag(256)
	_, err = driver.Build(context.Background(), cfg, strs, []driver.SourceModule{mod}, diags)
	if err != nil {
		return err
	}
	if err := renderDiagnostics(cmd, diags, files); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: entry point %q is valid\n", path, cfg.EntryPointFunction)
	return nil
}
