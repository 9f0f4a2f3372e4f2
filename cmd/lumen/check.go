package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lumen/internal/config"
	"lumen/internal/diag"
	"lumen/internal/diagfmt"
	"lumen/internal/driver"
	"lumen/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check <dir>",
	Short: "Resolve, type-check, and constant-fold every module under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("max-diagnostics", 100, "maximum number of diagnostics to print")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return err
	}

	strs := source.NewInterner()
	files := source.NewFileSetWithBase(dir)
	modules, err := loadModuleTree(strs, files, dir)
	if err != nil {
		return err
	}

	diags := diag.NewBag(1024)
	_, err = driver.Build(context.Background(), cfg, strs, modules, diags)
	if err != nil {
		return err
	}

	return renderDiagnostics(cmd, diags, files)
}

// loadModuleTree walks dir for `*.lumen` files, registers each into files,
// and hands the bytes to the configured Frontend. It never interprets the
// bytes itself — this module's own scope starts at the parsed tree (see
// frontend.go).
func loadModuleTree(strs *source.Interner, files *source.FileSet, dir string) ([]driver.SourceModule, error) {
	var modules []driver.SourceModule
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".lumen") {
			return nil
		}
		fileID, err := files.Load(path)
		if err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}
		mod, err := defaultFrontend.Parse(strs, path, fileID, files.Get(fileID).Content)
		if err != nil {
			return fmt.Errorf("parse %q: %w", path, err)
		}
		modules = append(modules, mod)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("no .lumen files found under %q", dir)
	}
	return modules, nil
}

func loadConfig(cmd *cobra.Command, dir string) (config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(dir)
}

func renderDiagnostics(cmd *cobra.Command, diags *diag.Bag, files *source.FileSet) error {
	diags.Dedup()
	diags.Sort()

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		colorMode, _ := cmd.Flags().GetString("color")
		opts := diagfmt.PrettyOpts{
			Color:     colorMode != "never",
			Context:   1,
			ShowNotes: true,
		}
		diagfmt.Pretty(os.Stdout, diags, files, opts)
	}
	if diags.HasErrors() {
		return fmt.Errorf("check failed with %d diagnostic(s)", len(diags.Items()))
	}
	return nil
}
