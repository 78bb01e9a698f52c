package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/install"
	"github.com/thoreinstein/nvsetup/internal/platform"
)

// newInstaller builds the installer for the loaded configuration. A nil
// detector means the running host.
func newInstaller(cmd *cobra.Command, detector platform.Detector) (*install.Installer, error) {
	dir, err := editorConfigDir()
	if err != nil {
		return nil, errors.NewUserError(err, errors.GetHint(err))
	}
	if detector == nil {
		detector = newDetector()
	}

	return install.New(
		newRunner(),
		detector,
		confirmer(cmd.OutOrStdout()),
		install.OptionsFromConfig(cfg, dir),
		install.WithOutput(cmd.OutOrStdout()),
	), nil
}

func runInstall(cmd *cobra.Command, _ []string) error {
	inst, err := newInstaller(cmd, nil)
	if err != nil {
		return err
	}
	return inst.Run(cmd.Context())
}
