package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gotest.tools/assert"
)

// ========================================.
// Doctor Tests.
// ========================================.

func TestRunDoctor_AllToolsAvailable(t *testing.T) {
	// Given: both external tools probe successfully.
	tool := &fakeTool{gitAvailable: true, hostAvailable: true}
	out := &bytes.Buffer{}

	// When: running doctor.
	err := runDoctor(context.Background(), tool, out)

	// Then: both tools are reported available.
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out.String(), "✅ git"))
	assert.Assert(t, strings.Contains(out.String(), "✅ gh"))
}

func TestRunDoctor_MissingToolsReported(t *testing.T) {
	// Given: neither tool is installed.
	tool := &fakeTool{}
	out := &bytes.Buffer{}

	// When: running doctor.
	err := runDoctor(context.Background(), tool, out)

	// Then: missing tools are informational, not an error.
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(out.String(), "❌ git"))
	assert.Assert(t, strings.Contains(out.String(), "❌ gh"))
	assert.Assert(t, strings.Contains(out.String(), "will be skipped"))
}
