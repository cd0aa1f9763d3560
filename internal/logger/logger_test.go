package logger

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Contains(t, buf.String(), "test message arg")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("info message")
	Warn("warn message")
	Section("Retrieval")

	assert.Zero(t, buf.Len(), "expected no output when verbose is disabled")
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Retrieval")

	assert.Contains(t, buf.String(), "=== Retrieval ===")
}

func TestInfoAndWarn_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("ingested %d items", 3)
	Warn("skipped %s", "doc-1")

	assert.Contains(t, buf.String(), "ingested 3 items")
	assert.Contains(t, buf.String(), "skipped doc-1")
}

func TestError_AlwaysWritten(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error(errors.New("boom"), "snapshot failed")

	assert.Contains(t, buf.String(), "snapshot failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestSetOutput_KeepsVerbosity(t *testing.T) {
	defer reset()

	SetVerbose(true)
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("still verbose")

	assert.Contains(t, buf.String(), "still verbose")
}
