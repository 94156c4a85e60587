package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	urfavecli "github.com/urfave/cli/v3"
	"gotest.tools/assert"

	"github.com/CForgeLabs/cforge-cli/internal/config"
	"github.com/CForgeLabs/cforge-cli/internal/scaffold"
)

// fakeTool records external tool invocations instead of spawning processes.
type fakeTool struct {
	gitAvailable  bool
	hostAvailable bool
	initErr       error
	commitErr     error
	remoteErr     error
	calls         []string
}

func (f *fakeTool) ProbeGit(context.Context) bool  { return f.gitAvailable }
func (f *fakeTool) ProbeHost(context.Context) bool { return f.hostAvailable }

func (f *fakeTool) InitRepo(_ context.Context, dir string) error {
	f.calls = append(f.calls, "init "+dir)
	return f.initErr
}

func (f *fakeTool) StageAndCommit(_ context.Context, dir string) error {
	f.calls = append(f.calls, "commit "+dir)
	return f.commitErr
}

func (f *fakeTool) CreateRemote(_ context.Context, dir, name, visibility string) error {
	f.calls = append(f.calls, "remote "+dir+" "+name+" "+visibility)
	return f.remoteErr
}

// ========================================.
// runNew Tests.
// ========================================.

func TestRunNew_SuccessWithGitAndRemote(t *testing.T) {
	// Given: a full project config and a healthy tool.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	project := scaffold.NewProjectConfig()
	project.Name = "proj"
	project.InitGit = true
	project.CreateRemote = true
	project.Visibility = config.VisibilityPublic
	tool := &fakeTool{gitAvailable: true, hostAvailable: true}
	out := &bytes.Buffer{}

	// When: running the scaffolding stages.
	outcome := runNew(context.Background(), project, tool, out)

	// Then: everything succeeded, stages ran in order.
	assert.Equal(t, OutcomeSuccess, outcome)
	assert.DeepEqual(t, []string{
		"init proj",
		"commit proj",
		"remote proj proj public",
	}, tool.calls)
	assert.Assert(t, strings.Contains(out.String(), "Git repository initialized"))
	assert.Assert(t, strings.Contains(out.String(), "Next steps"))
}

func TestRunNew_MaterializeFailureSkipsTooling(t *testing.T) {
	// Given: the target directory already exists.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	assert.NilError(t, os.Mkdir("proj", 0o755))
	project := scaffold.NewProjectConfig()
	project.Name = "proj"
	project.InitGit = true
	tool := &fakeTool{}
	out := &bytes.Buffer{}

	// When: running.
	outcome := runNew(context.Background(), project, tool, out)

	// Then: the run failed and no external tool was invoked.
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, 0, len(tool.calls))
	assert.Assert(t, strings.Contains(out.String(), "Failed to create project"))
}

func TestRunNew_CommitFailureSkipsRemote(t *testing.T) {
	// Given: git commit fails while a remote was requested.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	project := scaffold.NewProjectConfig()
	project.Name = "proj"
	project.InitGit = true
	project.CreateRemote = true
	project.Visibility = config.VisibilityPrivate
	tool := &fakeTool{commitErr: errors.New("nothing to commit")}
	out := &bytes.Buffer{}

	// When: running.
	outcome := runNew(context.Background(), project, tool, out)

	// Then: the run degrades to partial-git and remote creation never happens.
	assert.Equal(t, OutcomePartialGit, outcome)
	assert.DeepEqual(t, []string{"init proj", "commit proj"}, tool.calls)
	assert.Assert(t, strings.Contains(out.String(), "git initialization failed"))

	// And: the project files still exist on disk.
	_, statErr := os.Stat(filepath.Join("proj", "Makefile"))
	assert.NilError(t, statErr)
}

func TestRunNew_RemoteFailureIsPartial(t *testing.T) {
	// Given: remote creation fails after a clean git init.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	project := scaffold.NewProjectConfig()
	project.Name = "proj"
	project.InitGit = true
	project.CreateRemote = true
	project.Visibility = config.VisibilityPrivate
	tool := &fakeTool{remoteErr: errors.New("name already exists on this account")}
	out := &bytes.Buffer{}

	// When: running.
	outcome := runNew(context.Background(), project, tool, out)

	// Then: the run degrades to partial-remote.
	assert.Equal(t, OutcomePartialRemote, outcome)
	assert.Assert(t, strings.Contains(out.String(), "remote repository creation failed"))
}

func TestRunNew_NoGitRequested(t *testing.T) {
	// Given: a project without git.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	project := scaffold.NewProjectConfig()
	project.Name = "plain"
	tool := &fakeTool{}
	out := &bytes.Buffer{}

	// When: running.
	outcome := runNew(context.Background(), project, tool, out)

	// Then: success without any tool invocation, with a git hint.
	assert.Equal(t, OutcomeSuccess, outcome)
	assert.Equal(t, 0, len(tool.calls))
	assert.Assert(t, strings.Contains(out.String(), "git init' later"))
}

// ========================================.
// Exit contract Tests.
// ========================================.

func TestOutcomeError_ExitContract(t *testing.T) {
	// Given: the terminal outcomes.
	// Then: success and cancellation map to a clean exit.
	assert.NilError(t, outcomeError(OutcomeSuccess))
	assert.NilError(t, outcomeError(OutcomeCancelled))

	// And: every degraded outcome exits nonzero.
	for _, outcome := range []Outcome{OutcomeFailed, OutcomePartialGit, OutcomePartialRemote} {
		err := outcomeError(outcome)
		assert.Assert(t, err != nil, "outcome: %d", outcome)
		coder, ok := err.(urfavecli.ExitCoder)
		assert.Assert(t, ok, "outcome: %d", outcome)
		assert.Equal(t, 1, coder.ExitCode())
	}
}

// ========================================.
// Flag-driven command Tests.
// ========================================.

// newTestApp wires a fresh new command into a root command like main does.
func newTestApp() *urfavecli.Command {
	return &urfavecli.Command{
		Name:     "cforge",
		Commands: []*urfavecli.Command{newCommand()},
	}
}

func TestNewCommand_FlagsOnlyNoGit(t *testing.T) {
	// Given: a fresh working dir and a fully flag-driven invocation.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// When: running 'cforge new' non-interactively without git.
	err := newTestApp().Run(context.Background(),
		[]string{"cforge", "new", "--name", "flagproj", "--features", "readme,tests", "--description", "Via flags", "--git=false"})

	// Then: the project materialized with exactly the requested artifacts.
	assert.NilError(t, err)
	readme, readErr := os.ReadFile(filepath.Join("flagproj", "README.md"))
	assert.NilError(t, readErr)
	assert.Equal(t, "# flagproj\n\nVia flags\n", string(readme))
	_, statErr := os.Stat(filepath.Join("flagproj", "tests"))
	assert.NilError(t, statErr)
	_, statErr = os.Stat(filepath.Join("flagproj", ".gitignore"))
	assert.Assert(t, os.IsNotExist(statErr))
}

func TestNewCommand_InvalidNameFails(t *testing.T) {
	// Given: an illegal project name.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// When: running non-interactively.
	err := newTestApp().Run(context.Background(),
		[]string{"cforge", "new", "--name", "bad name", "--git=false"})

	// Then: validation rejects the run before any filesystem writes.
	assert.ErrorContains(t, err, "invalid project name")
	entries, readErr := os.ReadDir(".")
	assert.NilError(t, readErr)
	assert.Equal(t, 0, len(entries))
}

func TestNewCommand_UnknownFeatureFails(t *testing.T) {
	// Given: an unsupported feature flag value.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// When: running non-interactively.
	err := newTestApp().Run(context.Background(),
		[]string{"cforge", "new", "--name", "proj", "--features", "docs", "--git=false"})

	// Then: the feature list is rejected.
	assert.ErrorContains(t, err, "unknown feature 'docs'")
}

func TestNewCommand_InvalidVisibilityFails(t *testing.T) {
	// Given: a bogus visibility value.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	// When: running non-interactively.
	err := newTestApp().Run(context.Background(),
		[]string{"cforge", "new", "--name", "proj", "--git=false", "--visibility", "secret"})

	// Then: only public and private are accepted.
	assert.ErrorContains(t, err, "visibility must be")
}

// ========================================.
// projectFromFlags Tests.
// ========================================.

func TestProjectFromFlags_RemoteSkippedWhenHostUnavailable(t *testing.T) {
	// Given: --remote requested but the probe fails.
	t.Chdir(t.TempDir())
	defaults := config.NewDefaultScaffoldDefaults()
	tool := &fakeTool{hostAvailable: false}
	cmd := flagTestCommand(t, "--name", "proj", "--remote")

	// When: building the project config.
	project, err := projectFromFlags(context.Background(), cmd, defaults, tool)

	// Then: the run proceeds with CreateRemote off.
	assert.NilError(t, err)
	assert.Equal(t, false, project.CreateRemote)
}

func TestProjectFromFlags_RemoteRequiresGit(t *testing.T) {
	// Given: --remote with git disabled.
	t.Chdir(t.TempDir())
	defaults := config.NewDefaultScaffoldDefaults()
	tool := &fakeTool{hostAvailable: true}
	cmd := flagTestCommand(t, "--name", "proj", "--git=false", "--remote")

	// When: building the project config.
	_, err := projectFromFlags(context.Background(), cmd, defaults, tool)

	// Then: the combination is rejected.
	assert.ErrorContains(t, err, "--remote requires git initialization")
}

func TestProjectFromFlags_DefaultsFillUnsetFlags(t *testing.T) {
	// Given: only a name; defaults carry features and git.
	t.Chdir(t.TempDir())
	defaults := config.NewDefaultScaffoldDefaults()
	tool := &fakeTool{}
	cmd := flagTestCommand(t, "--name", "proj")

	// When: building the project config.
	project, err := projectFromFlags(context.Background(), cmd, defaults, tool)

	// Then: stored defaults answer the skipped questions.
	assert.NilError(t, err)
	assert.Equal(t, true, project.Has(config.FeatureGitignore))
	assert.Equal(t, true, project.Has(config.FeatureReadme))
	assert.Equal(t, true, project.InitGit)
	assert.Equal(t, config.VisibilityPrivate, project.Visibility)
}

// flagTestCommand parses args through a copy of NewCommand's flag set and
// hands the parsed command to the test.
func flagTestCommand(t *testing.T, args ...string) *urfavecli.Command {
	t.Helper()
	var parsed *urfavecli.Command
	cmd := &urfavecli.Command{
		Name:  "new",
		Flags: newProjectFlags(),
		Action: func(_ context.Context, c *urfavecli.Command) error {
			parsed = c
			return nil
		},
	}
	root := &urfavecli.Command{Name: "cforge", Commands: []*urfavecli.Command{cmd}}
	assert.NilError(t, root.Run(context.Background(), append([]string{"cforge", "new"}, args...)))
	return parsed
}
