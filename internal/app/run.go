package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
)

// Run resolves the requested tech (or every tech) and writes the resolved
// attribute sets as indented JSON for the downstream model builder.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	var output map[string]config.AttributeSet
	if a.config.TechName != "" {
		attrs, err := a.resolver.Resolve(ctx, a.config.TechName)
		if err != nil {
			return err
		}
		output = map[string]config.AttributeSet{a.config.TechName: attrs}
	} else {
		a.logger.Debug("Resolving all techs.", "workers", a.config.WorkerCount)
		resolved, err := a.resolver.ResolveAll(ctx, a.config.WorkerCount)
		if err != nil {
			return err
		}
		output = resolved
	}
	a.logger.Info("Resolution finished.", "techs", len(output))

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resolved attributes: %w", err)
	}
	fmt.Fprintln(a.outW, string(data))

	a.logger.Debug("App.Run method finished.")
	return nil
}
