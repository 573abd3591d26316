package yaml

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/fsutil"
)

// document is the top-level structure of a YAML library file.
type document struct {
	Techs map[string]map[string]any `yaml:"techs"`
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML library loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml/.yml library file under the given paths and
// translates their tech entries into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var filePaths []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtensions(path, ".yaml", ".yml")
		if err != nil {
			logger.Error("Failed to walk library path", "path", path, "error", err)
			return nil, err
		}
		filePaths = append(filePaths, found...)
	}

	model := &config.Model{}
	if len(filePaths) == 0 {
		logger.Debug("No YAML library files found.", "paths", paths)
		return model, nil
	}
	logger.Debug("Found YAML library files to load.", "files", filePaths)

	for _, filePath := range filePaths {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", filePath, err)
		}

		var doc document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", filePath, err)
		}

		// Mapping order is not observable after unmarshal, so entries are
		// sorted to keep loading deterministic.
		names := make([]string, 0, len(doc.Techs))
		for name := range doc.Techs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			def, err := translateTech(name, doc.Techs[name], filePath)
			if err != nil {
				return nil, err
			}
			model.Techs = append(model.Techs, def)
		}
		logger.Debug("Loaded tech definitions from YAML file.", "file", filePath, "techs", len(names))
	}

	logger.Info("YAML library loaded.", "files", len(filePaths), "techs", len(model.Techs))
	return model, nil
}
