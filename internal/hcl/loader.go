package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/fsutil"
	"github.com/vk/techgridgo/internal/schema"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL library loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl library file under the given paths and translates
// their tech blocks into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtensions(path, ".hcl")
		if err != nil {
			logger.Error("Failed to walk library path", "path", path, "error", err)
			return nil, err
		}
		filePaths = append(filePaths, found...)
	}

	model := &config.Model{}
	if len(filePaths) == 0 {
		logger.Debug("No .hcl library files found.", "paths", paths)
		return model, nil
	}
	logger.Debug("Found HCL library files to load.", "files", filePaths)

	parser := hclparse.NewParser()
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var lib schema.Library
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &lib); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode tech blocks in %s: %w", filePath, diags)
		}

		for _, tech := range lib.Techs {
			def, err := translateTech(tech, filePath)
			if err != nil {
				return nil, err
			}
			model.Techs = append(model.Techs, def)
		}
		logger.Debug("Loaded tech definitions from HCL file.", "file", filePath, "techs", len(lib.Techs))
	}

	logger.Info("HCL library loaded.", "files", len(filePaths), "techs", len(model.Techs))
	return model, nil
}
