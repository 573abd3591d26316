package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/techgridgo/internal/app"
	"github.com/vk/techgridgo/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an end-to-end resolver test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Resolved  map[string]config.AttributeSet
}

// RunResolverTest provides a standardized harness for end-to-end tests. The
// files map uses paths relative to a temporary root; files under "library/"
// form the base layer and files under "scenario/" the overlay. The harness
// loads everything, resolves every tech, and captures errors (including
// recovered startup panics) instead of failing the test, so error-path
// tests can assert on them.
func RunResolverTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunResolverTestWithContext(context.Background(), t, files)
}

// RunResolverTestWithContext is RunResolverTest with a caller-provided
// context.
func RunResolverTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	libraryDir := filepath.Join(tmpDir, "library")
	scenarioDir := filepath.Join(tmpDir, "scenario")
	require.NoError(t, os.Mkdir(libraryDir, 0755))
	require.NoError(t, os.Mkdir(scenarioDir, 0755))

	hasScenario := false
	for name, content := range files {
		if strings.HasPrefix(name, "scenario/") {
			hasScenario = true
		}
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig := &app.Config{
		LibraryPath: libraryDir,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: 4,
	}
	if hasScenario {
		appConfig.ScenarioPath = scenarioDir
	}

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(outBuffer, logBuffer, appConfig)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	resolved, err := testApp.Resolver().ResolveAll(ctx, appConfig.WorkerCount)

	if os.Getenv("TGGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		App:       testApp,
		Resolved:  resolved,
	}
}
