package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const unknownVersion = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the seq2many build version, module path and the Go version used to build it.",
		Run: func(cmd *cobra.Command, _ []string) {
			version, module, goVersion := buildVersion()

			cmd.Println("seq2many", version)
			cmd.Println("module  ", module)
			cmd.Println("go      ", goVersion)
		},
	}
}

func buildVersion() (version, module, goVersion string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion, "unknown", "unknown"
	}

	version = info.Main.Version
	if version == "" {
		version = unknownVersion
	}

	module = info.Main.Path
	if module == "" {
		module = "unknown"
	}

	return version, module, info.GoVersion
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
