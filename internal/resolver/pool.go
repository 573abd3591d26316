package resolver

import (
	"context"
	"sync"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
)

// ResolveAll eagerly resolves every tech in the registry using a pool of
// concurrent workers. Resolution is pure, so workers need no coordination
// beyond collecting results; the first error cancels the remaining work.
func (r *Resolver) ResolveAll(ctx context.Context, workers int) (map[string]config.AttributeSet, error) {
	logger := ctxlog.FromContext(ctx)
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	names := r.reg.Names()
	nameChan := make(chan string)

	var (
		mu       sync.Mutex
		resolved = make(map[string]config.AttributeSet, len(names))
		firstErr error
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerLogger := logger.With("workerID", workerID)
			workerLogger.Debug("Resolution worker started.")

			for name := range nameChan {
				if ctx.Err() != nil {
					continue
				}

				attrs, err := r.Resolve(ctx, name)

				mu.Lock()
				if err != nil {
					workerLogger.Error("Tech resolution failed.", "tech", name, "error", err)
					if firstErr == nil {
						firstErr = err
					}
					cancel()
				} else {
					resolved[name] = attrs
				}
				mu.Unlock()
			}
			workerLogger.Debug("Resolution worker finished.")
		}(i)
	}

	for _, name := range names {
		nameChan <- name
	}
	close(nameChan)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	logger.Debug("All techs resolved.", "count", len(resolved))
	return resolved, nil
}
