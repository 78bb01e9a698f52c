package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/install"
	"github.com/thoreinstein/nvsetup/internal/platform"
)

var (
	planFormat string
	planOS     string
)

func init() {
	planCmd.Flags().StringVarP(&planFormat, "format", "f", install.FormatText,
		"output format: text, json, yaml, toml")
	planCmd.Flags().StringVar(&planOS, "os", "",
		"plan for another OS (linux, darwin) instead of this host")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what nvsetup would do",
	Long: `Detect the host and print the commands nvsetup would run, in order.

Nothing is installed, moved or cloned, and no questions are asked. When the
configuration directory exists the plan shows the backup it would be moved to.`,
	Example: `  # Human-readable plan
  nvsetup plan

  # Machine-readable
  nvsetup plan --format json

  See Also: nvsetup doctor`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, _ []string) error {
	switch planFormat {
	case install.FormatText, install.FormatJSON, install.FormatYAML, install.FormatTOML:
	default:
		return errors.NewUserError(
			errors.Wrapf(install.ErrUnknownFormat, "%q", planFormat),
			"Use --format text, json, yaml or toml")
	}

	var detector platform.Detector
	if planOS != "" {
		detector = platform.StaticDetector{Info: platform.Info{OS: planOS, Arch: runtime.GOARCH}}
	}

	inst, err := newInstaller(cmd, detector)
	if err != nil {
		return err
	}

	p, err := inst.Plan(cmd.Context())
	if err != nil {
		return err
	}
	return p.Render(cmd.OutOrStdout(), planFormat)
}
