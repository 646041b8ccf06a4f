package cmd

import (
	"github.com/spf13/cobra"

	"seq2many.dev/pkg/seq2many/internal/domain"
	m "seq2many.dev/pkg/seq2many/internal/model"
)

var distanceCmd = newDistanceCmd()

func newDistanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance A B",
		Short: "Print the Hamming distance between two sequence files",
		Long: `Read two sequence files the same way as the reference input and print the
number of positions at which they differ. Both sequences must have the same length.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := workflow.Distance(commandContext(cmd), domain.DistanceArgs{
				A: m.Path(args[0]),
				B: m.Path(args[1]),
			})

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}
