package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hazzzi/maenggu-run/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show the effective settings",
	Long: `Show the effective settings after defaults, settings.yaml and
MAENGGU_* environment overrides are merged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if settings.Telemetry.APIKey != "" {
			settings.Telemetry.APIKey = "********"
		}

		data, err := yaml.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings and save file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settingsPath, err := config.SettingsFile()
		if err != nil {
			return err
		}
		savePath, err := config.SaveFile()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, field("Settings", settingsPath))
		fmt.Fprintln(out, field("Save", savePath))
		return nil
	},
}

var settingsTelemetryCmd = &cobra.Command{
	Use:       "telemetry <on|off>",
	Short:     "Turn anonymous error reporting on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := parseToggle(args[0])
		if err != nil {
			return err
		}

		settings, err := config.EnsureSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		settings.Telemetry.Enabled = enabled
		if err := config.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("Telemetry "+strings.ToLower(args[0])+"."),
			styleHint.Render("(takes effect when the daemon restarts)"))
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsTelemetryCmd)
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q: expected on or off", s)
}
