package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/classicml/pkg/errors"
)

func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", "operation", "test")
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")
	testLogger.Error("error message", "error", fmt.Errorf("test error"))

	if buffer.String() == "" {
		t.Fatal("Expected log output, got empty string")
	}
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !testLogger.ContainsField("error", "test error") {
		t.Error("error values should be rendered as their message")
	}
}

func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		ModelNameKey, "KMeans",
		ComponentKey, "cluster",
	)
	contextLogger.Info("fit completed", OperationKey, OperationFit)

	assert.True(t, testLogger.ContainsField(ModelNameKey, "KMeans"))
	assert.True(t, testLogger.ContainsField(ComponentKey, "cluster"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationFit))
}

func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	assert.True(t, testLogger.Enabled(ctx, LevelInfo))
	assert.True(t, testLogger.Enabled(ctx, LevelError))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	assert.False(t, testLogger.ContainsMessage("this should not appear"))
	assert.True(t, testLogger.ContainsMessage("this should appear"))
}

func TestMLAttributeKeys(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	testLogger.Info("fit completed",
		OperationKey, OperationFit,
		SamplesKey, 1000,
		FeaturesKey, 10,
		ModelNameKey, "LinearRegression",
		LossKey, 0.25,
	)

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	expected := map[string]interface{}{
		OperationKey: OperationFit,
		SamplesKey:   1000.0,
		FeaturesKey:  10.0,
		ModelNameKey: "LinearRegression",
		LossKey:      0.25,
	}
	for key, want := range expected {
		assert.Equal(t, want, entries[0][key], key)
	}
}

func TestTestLoggerProvider(t *testing.T) {
	provider, captured := NewTestLoggerProvider(LevelDebug)
	SetProvider(provider)
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))

	GetLoggerWithName("tree").Debug("named logger message")

	assert.True(t, captured.ContainsMessage("named logger message"))
	assert.True(t, captured.ContainsField(ComponentKey, "tree"))
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo).With(ModelNameKey, "NeuralNetwork")

	logger.Debug("hidden")
	logger.Info("epoch finished", EpochKey, 100, LossKey, 0.5)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "epoch finished", entry["message"])
	assert.Equal(t, "NeuralNetwork", entry[ModelNameKey])
	assert.Equal(t, 100.0, entry[EpochKey])

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestWarningsRouteThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	SetProvider(NewZerologProvider(&buf, LevelWarn))
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))

	errors.Warn(errors.NewConvergenceWarning("LinearRegression", 10, ""))

	out := buf.String()
	assert.Contains(t, out, "ConvergenceWarning")
	assert.Contains(t, out, `"iterations":10`)
}

func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				testLogger.Info(fmt.Sprintf("goroutine %d message %d", id, j))
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestToLogLevel(t *testing.T) {
	_, err := ToLogLevel("verbose")
	assert.Error(t, err)
	level, err := ToLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, Level(level))
}
