package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s %s\n",
			styleBrand.Render("Maenggu"),
			styleVersion.Render(buildinfo.Version),
			styleHint.Render("("+buildinfo.Codename+")"),
		)
		fmt.Fprintln(out, field("Commit", buildinfo.CommitHash))
		fmt.Fprintln(out, field("Built", buildinfo.BuildDate))
		fmt.Fprintln(out, field("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH))
		fmt.Fprintln(out, field("Go", runtime.Version()))
	},
}
