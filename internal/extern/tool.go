// Copyright 2026 cforge Contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at.
//
//     http://www.apache.org/licenses/LICENSE-2.0.
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package extern wraps the external version-control and repository-hosting
// command-line tools (git and gh) behind a narrow interface so the rest of
// the CLI never builds shell strings and tests never spawn real processes.
package extern

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommitMessage is used for the initial commit of a new project.
const DefaultCommitMessage = "Initial commit"

// Tool is the surface the scaffolding flow needs from external tooling.
// Every method runs the underlying command exactly once; there are no
// retries and no timeouts (a hung tool hangs the run).
type Tool interface {
	// ProbeGit reports whether the git CLI is installed and runnable.
	ProbeGit(ctx context.Context) bool
	// ProbeHost reports whether the hosting CLI (gh) is installed and runnable.
	ProbeHost(ctx context.Context) bool
	// InitRepo initializes a git repository in dir.
	InitRepo(ctx context.Context, dir string) error
	// StageAndCommit stages all files in dir and creates the initial commit.
	// The first failing command aborts the sequence; nothing is rolled back.
	StageAndCommit(ctx context.Context, dir string) error
	// CreateRemote creates a hosted repository with the given name and
	// visibility, wires it up as the push target of dir and pushes.
	CreateRemote(ctx context.Context, dir, name, visibility string) error
}

// CLITool is the real Tool implementation shelling out to git and gh.
// The binary names are fields so tests can point them at nonexistent
// commands.
type CLITool struct {
	GitBin  string
	HostBin string
}

// NewCLITool returns a Tool using the git and gh binaries from PATH.
func NewCLITool() *CLITool {
	return &CLITool{
		GitBin:  "git",
		HostBin: "gh",
	}
}

// run executes one external command with an argument array (never a shell
// string) and folds captured stderr into the returned error.
func (t *CLITool) run(ctx context.Context, dir, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("%s %s failed: %w\nstderr: %s",
				bin, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("%s %s failed: %w", bin, strings.Join(args, " "), err)
	}
	return nil
}

// ProbeGit runs 'git --version'; any failure means unavailable.
func (t *CLITool) ProbeGit(ctx context.Context) bool {
	return t.run(ctx, "", t.GitBin, "--version") == nil
}

// ProbeHost runs 'gh --version'; any failure (including not installed)
// means unavailable.
func (t *CLITool) ProbeHost(ctx context.Context) bool {
	return t.run(ctx, "", t.HostBin, "--version") == nil
}

// InitRepo runs 'git init' in dir.
func (t *CLITool) InitRepo(ctx context.Context, dir string) error {
	return t.run(ctx, dir, t.GitBin, "init")
}

// StageAndCommit runs 'git add .' followed by 'git commit' in dir.
func (t *CLITool) StageAndCommit(ctx context.Context, dir string) error {
	if err := t.run(ctx, dir, t.GitBin, "add", "."); err != nil {
		return err
	}
	return t.run(ctx, dir, t.GitBin, "commit", "-m", DefaultCommitMessage)
}

// CreateRemote runs 'gh repo create' in dir, sourcing the local
// repository and pushing immediately.
func (t *CLITool) CreateRemote(ctx context.Context, dir, name, visibility string) error {
	return t.run(ctx, dir, t.HostBin, "repo", "create", name,
		"--"+visibility, "--source", ".", "--remote", "origin", "--push")
}
