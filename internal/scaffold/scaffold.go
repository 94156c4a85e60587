// Package scaffold materializes a minimal C project skeleton on disk
// from a collected project configuration.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CForgeLabs/cforge-cli/internal/config"
)

// ProjectConfig holds every answer collected by the new-project flow.
// It is assembled incrementally during prompting and treated as
// read-only once materialization starts.
type ProjectConfig struct {
	Name         string          // Validated project directory and repository name
	Features     map[string]bool // Selected optional features, keyed by config.Feature* names
	Description  string          // README body text, may be empty
	InitGit      bool            // Initialize a local git repository
	CreateRemote bool            // Create a hosted repository via the gh CLI
	Visibility   string          // Remote repository visibility: public or private
}

// NewProjectConfig returns an empty project configuration with an
// initialized feature set.
func NewProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Features: make(map[string]bool),
	}
}

// Has reports whether the given optional feature was selected.
func (c *ProjectConfig) Has(feature string) bool {
	return c.Features[feature]
}

// ReadmeContent renders the computed README.md body for a project:
// the project name as a heading followed by the description.
func ReadmeContent(name, description string) string {
	return fmt.Sprintf("# %s\n\n%s\n", name, description)
}

// Materialize creates the project directory tree and writes all files
// for the given configuration, relative to the current working directory.
// Writes happen in a fixed order and are not atomic: a failure partway
// leaves a partially populated directory behind, and the first error is
// returned as-is. The returned slice lists every path created, in order.
func Materialize(cfg *ProjectConfig) ([]string, error) {
	created := []string{}

	// Root directory. Fails if the path appeared since prompt-time
	// validation, or on permission problems.
	if err := os.Mkdir(cfg.Name, 0o755); err != nil {
		return created, fmt.Errorf("failed to create project directory: %w", err)
	}
	created = append(created, cfg.Name)

	srcDir := filepath.Join(cfg.Name, "src")
	if err := os.Mkdir(srcDir, 0o755); err != nil {
		return created, fmt.Errorf("failed to create src directory: %w", err)
	}
	created = append(created, srcDir)

	if cfg.Has(config.FeatureTests) {
		testsDir := filepath.Join(cfg.Name, "tests")
		if err := os.Mkdir(testsDir, 0o755); err != nil {
			return created, fmt.Errorf("failed to create tests directory: %w", err)
		}
		created = append(created, testsDir)
	}

	makefile := filepath.Join(cfg.Name, "Makefile")
	if err := os.WriteFile(makefile, makefileTemplate, 0o644); err != nil {
		return created, fmt.Errorf("failed to write Makefile: %w", err)
	}
	created = append(created, makefile)

	mainFile := filepath.Join(srcDir, "main.c")
	if err := os.WriteFile(mainFile, mainTemplate, 0o644); err != nil {
		return created, fmt.Errorf("failed to write src/main.c: %w", err)
	}
	created = append(created, mainFile)

	if cfg.Has(config.FeatureGitignore) {
		gitignore := filepath.Join(cfg.Name, ".gitignore")
		if err := os.WriteFile(gitignore, gitignoreTemplate, 0o644); err != nil {
			return created, fmt.Errorf("failed to write .gitignore: %w", err)
		}
		created = append(created, gitignore)
	}

	if cfg.Has(config.FeatureReadme) {
		readme := filepath.Join(cfg.Name, "README.md")
		content := ReadmeContent(cfg.Name, cfg.Description)
		if err := os.WriteFile(readme, []byte(content), 0o644); err != nil {
			return created, fmt.Errorf("failed to write README.md: %w", err)
		}
		created = append(created, readme)
	}

	return created, nil
}
