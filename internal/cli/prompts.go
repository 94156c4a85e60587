package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/CForgeLabs/cforge-cli/internal/common"
	"github.com/CForgeLabs/cforge-cli/internal/config"
	"github.com/CForgeLabs/cforge-cli/internal/scaffold"
)

// ErrCancelled is returned when the user aborts the interactive flow.
// It is not a failure: the caller prints a notice and exits cleanly
// without touching the filesystem.
var ErrCancelled = errors.New("cancelled")

// promptStep enumerates the linear interactive flow. Every step can
// transition to the cancelled terminal state; otherwise the order is
// fixed and conditional steps are skipped in place.
type promptStep int

const (
	stepName promptStep = iota
	stepFeatures
	stepDescription
	stepGit
	stepRemote
	stepVisibility
	stepDone
)

// PromptUI provides the interactive question sequence for the new command.
type PromptUI struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPromptUI creates a prompt UI reading answers from in and writing
// questions to out.
func NewPromptUI(in io.Reader, out io.Writer) *PromptUI {
	return &PromptUI{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// prompt prints a label and reads one trimmed answer line.
// End of input (ctrl-d) at any prompt cancels the whole flow.
func (ui *PromptUI) prompt(label string) (string, error) {
	fmt.Fprint(ui.out, label)
	response, err := ui.reader.ReadString('\n')
	if err != nil {
		return "", ErrCancelled
	}
	return strings.TrimSpace(response), nil
}

// Collect walks the prompt sequence and assembles a project configuration.
// probeHost is only invoked when the git question was answered with yes;
// when the hosting CLI is unavailable the remote questions are skipped
// entirely. Returns ErrCancelled if the user aborts at any step, in which
// case nothing was written to disk.
func (ui *PromptUI) Collect(ctx context.Context, defaults config.ScaffoldDefaults, probeHost func(context.Context) bool) (*scaffold.ProjectConfig, error) {
	project := scaffold.NewProjectConfig()
	project.Visibility = defaults.Visibility

	for step := stepName; step != stepDone; {
		var err error
		switch step {
		case stepName:
			err = ui.promptName(project)
			step = stepFeatures
		case stepFeatures:
			err = ui.promptFeatures(project, defaults)
			step = stepDescription
		case stepDescription:
			if project.Has(config.FeatureReadme) {
				err = ui.promptDescription(project)
			}
			step = stepGit
		case stepGit:
			err = ui.promptGit(project, defaults)
			step = stepRemote
		case stepRemote:
			if project.InitGit && probeHost(ctx) {
				err = ui.promptRemote(project)
			}
			step = stepVisibility
		case stepVisibility:
			if project.CreateRemote {
				err = ui.promptVisibility(project, defaults)
			}
			step = stepDone
		}
		if err != nil {
			return nil, err
		}
	}

	return project, nil
}

// promptName asks for the project name until a valid one is entered.
// The first failing validation rule is surfaced as the re-ask reason.
func (ui *PromptUI) promptName(project *scaffold.ProjectConfig) error {
	for {
		name, err := ui.prompt("Project name: ")
		if err != nil {
			return err
		}
		if validationErr := common.ValidateProjectName(name); validationErr != nil {
			fmt.Fprintf(ui.out, "❌ %v\n", validationErr)
			continue
		}
		project.Name = name
		return nil
	}
}

// promptFeatures asks for the optional feature multi-selection.
// An empty answer accepts the configured defaults, 'none' selects nothing.
func (ui *PromptUI) promptFeatures(project *scaffold.ProjectConfig, defaults config.ScaffoldDefaults) error {
	fmt.Fprintln(ui.out, "\nOptional features:")
	fmt.Fprintln(ui.out, "  [1] .gitignore")
	fmt.Fprintln(ui.out, "  [2] README.md")
	fmt.Fprintln(ui.out, "  [3] tests/ directory")

	label := fmt.Sprintf("Features (comma separated, 'none' for none) [%s]: ",
		strings.Join(defaults.Features, ", "))

	for {
		answer, err := ui.prompt(label)
		if err != nil {
			return err
		}

		selected, parseErr := parseFeatureSelection(answer, defaults.Features)
		if parseErr != nil {
			fmt.Fprintf(ui.out, "❌ %v\n", parseErr)
			continue
		}

		project.Features = selected
		if !project.Has(config.FeatureGitignore) {
			fmt.Fprintln(ui.out, "💡 Tip: without a .gitignore, build output ends up in version control")
		}
		return nil
	}
}

// parseFeatureSelection turns a user answer into a feature set.
// Accepts numbered choices (1-3) and feature names, in any mix.
func parseFeatureSelection(answer string, defaultFeatures []string) (map[string]bool, error) {
	selected := make(map[string]bool)

	if answer == "" {
		for _, feature := range defaultFeatures {
			selected[feature] = true
		}
		return selected, nil
	}
	if answer == "none" {
		return selected, nil
	}

	for _, token := range strings.Split(answer, ",") {
		token = strings.TrimSpace(token)
		switch token {
		case "":
		case "1", config.FeatureGitignore:
			selected[config.FeatureGitignore] = true
		case "2", config.FeatureReadme:
			selected[config.FeatureReadme] = true
		case "3", config.FeatureTests:
			selected[config.FeatureTests] = true
		default:
			return nil, fmt.Errorf("unknown feature '%s' (use 1-3, feature names, or 'none')", token)
		}
	}
	return selected, nil
}

// promptDescription asks for the README description. Empty is allowed.
func (ui *PromptUI) promptDescription(project *scaffold.ProjectConfig) error {
	description, err := ui.prompt("Project description (optional): ")
	if err != nil {
		return err
	}
	project.Description = description
	return nil
}

func (ui *PromptUI) promptGit(project *scaffold.ProjectConfig, defaults config.ScaffoldDefaults) error {
	initGit, err := ui.promptYesNo("Initialize a git repository?", defaults.InitGit)
	if err != nil {
		return err
	}
	project.InitGit = initGit
	return nil
}

func (ui *PromptUI) promptRemote(project *scaffold.ProjectConfig) error {
	createRemote, err := ui.promptYesNo("Create a GitHub repository?", false)
	if err != nil {
		return err
	}
	project.CreateRemote = createRemote
	return nil
}

// promptVisibility asks for the remote repository visibility.
func (ui *PromptUI) promptVisibility(project *scaffold.ProjectConfig, defaults config.ScaffoldDefaults) error {
	fallback := defaults.Visibility
	if fallback == "" {
		fallback = config.VisibilityPrivate
	}

	for {
		answer, err := ui.prompt(fmt.Sprintf("Repository visibility - [1] public, [2] private [%s]: ", fallback))
		if err != nil {
			return err
		}
		switch answer {
		case "":
			project.Visibility = fallback
			return nil
		case "1", config.VisibilityPublic:
			project.Visibility = config.VisibilityPublic
			return nil
		case "2", config.VisibilityPrivate:
			project.Visibility = config.VisibilityPrivate
			return nil
		default:
			fmt.Fprintf(ui.out, "❌ Invalid choice '%s'\n", answer)
		}
	}
}

// promptYesNo asks a yes/no question; an empty answer takes the default.
func (ui *PromptUI) promptYesNo(question string, defaultYes bool) (bool, error) {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}

	for {
		answer, err := ui.prompt(fmt.Sprintf("%s %s: ", question, suffix))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintf(ui.out, "❌ Please answer 'y' or 'n'\n")
		}
	}
}
