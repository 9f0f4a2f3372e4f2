package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lumen/internal/diag"
	"lumen/internal/driver"
	"lumen/internal/ide"
	"lumen/internal/source"
)

var ideCmd = &cobra.Command{
	Use:   "ide <dir>",
	Short: "Serve the line-delimited JSON editor protocol over stdin/stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runIDE,
}

// request is one line of editor input (SPEC_FULL.md §13): "diagnostics"
// and "hints" take no params, "hover" and "goto-definition" need a byte
// offset into the root module's file.
type request struct {
	Method string `json:"method"`
	Offset uint32 `json:"offset"`
}

func runIDE(cmd *cobra.Command, args []string) error {
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
	res, err := driver.Build(context.Background(), cfg, strs, modules, diags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var req request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			fmt.Fprintf(out, "{\"error\":%q}\n", err.Error())
			continue
		}
		if err := dispatch(out, req, res, diags, files); err != nil {
			fmt.Fprintf(out, "{\"error\":%q}\n", err.Error())
		}
	}
	return scanner.Err()
}

func dispatch(out io.Writer, req request, res *driver.Result, diags *diag.Bag, files *source.FileSet) error {
	switch req.Method {
	case "diagnostics":
		return ide.WriteDiagnostics(out, diags, files)
	case "hints":
		return ide.WriteHints(out, res.Workspace, res.TypeCtx, files, res.Root.ID)
	case "hover":
		return ide.WriteHover(out, res.Workspace, res.TypeCtx, res.Root.File, req.Offset)
	case "goto-definition":
		return ide.WriteGotoDefinition(out, res.Workspace, files, res.Root.File, req.Offset)
	default:
		return fmt.Errorf("unknown method %q", req.Method)
	}
}
