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

// Package cli provides all CLI commands cforge offers,
// including new, doctor, config and all of their sub-commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/CForgeLabs/cforge-cli/internal/common"
	"github.com/CForgeLabs/cforge-cli/internal/config"
	"github.com/CForgeLabs/cforge-cli/internal/extern"
	"github.com/CForgeLabs/cforge-cli/internal/scaffold"
)

// Outcome classifies how a scaffolding run ended. The command shell
// translates it into the process exit code: Success and Cancelled exit 0,
// everything else exits 1.
type Outcome int

const (
	// OutcomeSuccess means every requested stage completed.
	OutcomeSuccess Outcome = iota
	// OutcomeCancelled means the user aborted during prompting; no files were written.
	OutcomeCancelled
	// OutcomeFailed means materialization failed; a partial tree may remain on disk.
	OutcomeFailed
	// OutcomePartialGit means the project was created but git initialization failed.
	// Remote creation is skipped in this case since there is no commit to push.
	OutcomePartialGit
	// OutcomePartialRemote means the project and local repository exist but
	// the hosted repository could not be created.
	OutcomePartialRemote
)

// NewCommand scaffolds a new C project. Invoked bare it runs the fully
// interactive flow; with --name it runs non-interactively, taking
// unanswered questions from the stored defaults.
var NewCommand = newCommand()

// newCommand builds a fresh instance of the new command. Tests use this
// to avoid sharing parsed flag state between runs.
func newCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:        "new",
		Usage:       "Create a new C project",
		Description: "Creates a C project skeleton (Makefile, src/main.c, optional extras) and optionally initializes git and a GitHub repository",
		Action:      newProject,
		Flags:       newProjectFlags(),
	}
}

// newProjectFlags returns the flag set of the new command, one flag per
// interactive prompt.
func newProjectFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Project name (skips the interactive prompts)",
		},
		&urfavecli.StringFlag{
			Name:    "features",
			Aliases: []string{"f"},
			Usage:   "Comma separated feature list: gitignore,readme,tests (empty for none)",
		},
		&urfavecli.StringFlag{
			Name:    "description",
			Aliases: []string{"d"},
			Usage:   "README description (only used with the readme feature)",
		},
		&urfavecli.BoolFlag{
			Name:  "git",
			Usage: "Initialize a git repository",
		},
		&urfavecli.BoolFlag{
			Name:  "remote",
			Usage: "Create a GitHub repository (requires the gh CLI)",
		},
		&urfavecli.StringFlag{
			Name:  "visibility",
			Usage: "Remote repository visibility: public or private",
		},
	}
}

// newProject is the action behind 'cforge new'. It collects the project
// configuration (interactively or from flags), runs the scaffolding
// stages and maps the outcome to the process exit code.
func newProject(ctx context.Context, cmd *urfavecli.Command) error {
	if err := common.InitializeLogger(); err != nil {
		// The log file is best effort; the run itself proceeds.
		fmt.Fprintf(os.Stderr, "⚠️  Could not open log file: %v\n", err)
	}
	defer common.CloseLogger()

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	defaults := config.NewDefaultScaffoldDefaults()
	if cfg.Defaults != nil {
		defaults = *cfg.Defaults
	}

	tool := extern.NewCLITool()

	var project *scaffold.ProjectConfig
	if cmd.String("name") == "" {
		fmt.Printf("\n🛠  Welcome to cforge!\n\n")
		ui := NewPromptUI(os.Stdin, os.Stdout)
		project, err = ui.Collect(ctx, defaults, tool.ProbeHost)
		if errors.Is(err, ErrCancelled) {
			fmt.Printf("\n🚫 Cancelled - no files were created.\n")
			common.LogInfo("Run cancelled during prompting")
			return outcomeError(OutcomeCancelled)
		}
		if err != nil {
			return err
		}
	} else {
		project, err = projectFromFlags(ctx, cmd, defaults, tool)
		if err != nil {
			return err
		}
	}

	return outcomeError(runNew(ctx, project, tool, os.Stdout))
}

// outcomeError translates a run outcome into the error handed to the
// command shell. Success and cancellation exit 0; failed and partial
// runs exit 1.
func outcomeError(outcome Outcome) error {
	switch outcome {
	case OutcomeFailed:
		return urfavecli.Exit("project creation failed", 1)
	case OutcomePartialGit:
		return urfavecli.Exit("project created, git initialization failed", 1)
	case OutcomePartialRemote:
		return urfavecli.Exit("project created, remote repository creation failed", 1)
	default:
		return nil
	}
}

// projectFromFlags builds the project configuration for a non-interactive
// run. Unset flags fall back to the stored defaults; the name is validated
// with the same rules as the interactive prompt.
func projectFromFlags(ctx context.Context, cmd *urfavecli.Command, defaults config.ScaffoldDefaults, tool extern.Tool) (*scaffold.ProjectConfig, error) {
	project := scaffold.NewProjectConfig()

	name := cmd.String("name")
	if err := common.ValidateProjectName(name); err != nil {
		return nil, err
	}
	project.Name = name

	featureNames := defaults.Features
	if cmd.IsSet("features") {
		featureNames = []string{}
		for _, feature := range strings.Split(cmd.String("features"), ",") {
			feature = strings.TrimSpace(feature)
			if feature == "" {
				continue
			}
			if !config.IsKnownFeature(feature) {
				return nil, fmt.Errorf("unknown feature '%s' (supported: %v)", feature, config.KnownFeatures)
			}
			featureNames = append(featureNames, feature)
		}
	}
	for _, feature := range featureNames {
		project.Features[feature] = true
	}

	project.Description = cmd.String("description")

	project.InitGit = defaults.InitGit
	if cmd.IsSet("git") {
		project.InitGit = cmd.Bool("git")
	}

	if cmd.Bool("remote") {
		if !project.InitGit {
			return nil, fmt.Errorf("--remote requires git initialization (drop --git=false)")
		}
		if !tool.ProbeHost(ctx) {
			fmt.Printf("⚠️  GitHub CLI (gh) not available - skipping remote repository creation\n")
		} else {
			project.CreateRemote = true
		}
	}

	project.Visibility = defaults.Visibility
	if cmd.IsSet("visibility") {
		project.Visibility = cmd.String("visibility")
	}
	if project.Visibility == "" {
		project.Visibility = config.VisibilityPrivate
	}
	if project.Visibility != config.VisibilityPublic && project.Visibility != config.VisibilityPrivate {
		return nil, fmt.Errorf("visibility must be '%s' or '%s', got '%s'",
			config.VisibilityPublic, config.VisibilityPrivate, project.Visibility)
	}

	return project, nil
}

// runNew executes the scaffolding stages in order: materialize, then
// git init, then remote creation. Later stages degrade the outcome
// instead of rolling back earlier ones.
func runNew(ctx context.Context, project *scaffold.ProjectConfig, tool extern.Tool, out io.Writer) Outcome {
	var created []string
	err := common.LogOperation("materialize "+project.Name, func() error {
		var materializeErr error
		created, materializeErr = scaffold.Materialize(project)
		return materializeErr
	})
	if err != nil {
		fmt.Fprintf(out, "❌ Failed to create project: %v\n", err)
		return OutcomeFailed
	}

	for _, path := range created {
		fmt.Fprintf(out, "  created %s\n", path)
	}
	fmt.Fprintf(out, "\n✅ Project '%s' created at %s\n",
		project.Name, filepath.Join(common.GetCurrentWorkingDir(), project.Name))

	if project.InitGit {
		err := common.LogOperation("git init "+project.Name, func() error {
			if initErr := tool.InitRepo(ctx, project.Name); initErr != nil {
				return initErr
			}
			return tool.StageAndCommit(ctx, project.Name)
		})
		if err != nil {
			fmt.Fprintf(out, "⚠️  Project created, but git initialization failed: %v\n", err)
			return OutcomePartialGit
		}
		fmt.Fprintf(out, "✅ Git repository initialized\n")
	}

	if project.CreateRemote {
		err := common.LogOperation("create remote "+project.Name, func() error {
			return tool.CreateRemote(ctx, project.Name, project.Name, project.Visibility)
		})
		if err != nil {
			fmt.Fprintf(out, "⚠️  Project created, but remote repository creation failed: %v\n", err)
			return OutcomePartialRemote
		}
		fmt.Fprintf(out, "✅ Remote repository '%s' created (%s) and pushed\n", project.Name, project.Visibility)
	}

	printNextSteps(out, project)
	return OutcomeSuccess
}

func printNextSteps(out io.Writer, project *scaffold.ProjectConfig) {
	fmt.Fprintf(out, "\n📋 Next steps:\n")
	fmt.Fprintf(out, "  cd %s\n", project.Name)
	fmt.Fprintf(out, "  make\n")
	fmt.Fprintf(out, "  ./build/app\n")
	if !project.InitGit {
		fmt.Fprintf(out, "\n💡 Use 'git init' later to put the project under version control\n")
	}
}
