package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/CForgeLabs/cforge-cli/internal/extern"
)

// DoctorCommand reports whether the external tools cforge shells out to
// are installed and runnable.
var DoctorCommand = &urfavecli.Command{
	Name:        "doctor",
	Usage:       "Check availability of external tools",
	Description: "Probes the git and gh command-line tools the way the new-project flow does",
	Action: func(ctx context.Context, _ *urfavecli.Command) error {
		return runDoctor(ctx, extern.NewCLITool(), os.Stdout)
	},
}

// runDoctor probes each tool once and prints one status line per tool.
// Missing tools are informational, not an error: the scaffolder works
// without them, it just skips the dependent stages.
func runDoctor(ctx context.Context, tool extern.Tool, out io.Writer) error {
	printProbe(out, "git", "version control", tool.ProbeGit(ctx))
	printProbe(out, "gh", "GitHub repository creation", tool.ProbeHost(ctx))
	return nil
}

func printProbe(out io.Writer, name, purpose string, available bool) {
	if available {
		fmt.Fprintf(out, "✅ %s - available (%s)\n", name, purpose)
		return
	}
	fmt.Fprintf(out, "❌ %s - not available (%s will be skipped)\n", name, purpose)
}
