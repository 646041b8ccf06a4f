package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write seq2many.yaml with the current run and log defaults",
		Long: `Write seq2many.yaml in the current directory. The file holds the run section
(reference, mode, position, aa, mlist, regions, strict_mode), the output
directory, the manifest switch and the log rotation settings, resolved from
defaults, SEQ2MANY_* environment variables and any flags given.

An existing file is kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			write := viper.SafeWriteConfigAs
			if force {
				write = viper.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("write %s: %w", targetPath, err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, forceFlagName, false, "overwrite an existing seq2many.yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
