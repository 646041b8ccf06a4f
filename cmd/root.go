// Package cmd provides the root command and CLI setup for seq2many.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seq2many.dev/pkg/seq2many/internal/adapter"
	"seq2many.dev/pkg/seq2many/internal/controller"
	"seq2many.dev/pkg/seq2many/internal/domain"
	m "seq2many.dev/pkg/seq2many/internal/model"
)

var fsAdapter adapter.SequenceFSAdapter
var manifestStore adapter.ManifestStore
var workflow domain.Workflow
var ui controller.UI

var outputFlag string
var manifestFlag bool
var strictModeFlag bool
var verboseFlag bool
var logFileFlag string

var refFlag string
var modeFlag string
var positionFlag int
var aaFlag string
var mlistFlag string
var regionFlags []string

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSequenceFSAdapter()
	manifestStore = adapter.NewManifestStore()
	workflow = domain.NewWorkflow(fsAdapter, manifestStore, ui)
}

const rootLongDescription = `seq2many generates mutant protein sequences from a reference sequence.

Modes:
  single   substitute one residue (--position, --aa)
  multi    apply every AMINO:POSITION edit of a mutation list (--mlist)
  deep     deep mutational scanning: every amino acid at every position
           of each region (--region BEGIN:END, repeatable)

Positions are 0-indexed and regions are half-open [BEGIN, END).`

const mlistHelp = `mutation list file, one AMINO:POSITION edit per line, e.g.
  A:1
  L:2
  K:5`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seq2many",
		Short: "Generate mutant sequences from a reference sequence",
		Long:  rootLongDescription,
		Args:  cobra.NoArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			reference := viper.GetString(referenceConfigKey)
			if reference == "" {
				return cmd.Help()
			}

			regions, err := parseRegions(regionValues(cmd))
			if err != nil {
				return err
			}

			positionSet := cmd.Flags().Changed(positionFlagName) || viper.IsSet(positionConfigKey)

			return workflow.Run(commandContext(cmd), domain.RunArgs{
				Reference:    m.Path(reference),
				Mode:         viper.GetString(modeConfigKey),
				Position:     viper.GetInt(positionConfigKey),
				PositionSet:  positionSet,
				AminoAcid:    viper.GetString(aaConfigKey),
				MutationList: m.Path(viper.GetString(mlistConfigKey)),
				Regions:      regions,
				Output:       m.Path(viper.GetString(outputConfigKey)),
				StrictMode:   viper.GetBool(strictModeConfigKey),
				Manifest:     viper.GetBool(manifestConfigKey),
			})
		},
	}

	configureRootFlags(cmd)
	configureRunFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			viper.GetString(outputConfigKey),
			"output directory for sequence and index files",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().BoolVar(&manifestFlag, manifestFlagName, viper.GetBool(manifestConfigKey), "write manifest.yaml listing the generated files")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(manifestFlagName), manifestConfigKey)

	cmd.PersistentFlags().BoolVar(&strictModeFlag, strictModeFlagName, viper.GetBool(strictModeConfigKey), "fail instead of warning when the mode is not recognized")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(strictModeFlagName), strictModeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&refFlag, refFlagName, "i", viper.GetString(referenceConfigKey), "reference sequence file ('>' lines are skipped, .gz accepted, - for stdin)")
	bindFlagToConfig(cmd.Flags().Lookup(refFlagName), referenceConfigKey)

	cmd.Flags().StringVarP(&modeFlag, modeFlagName, "m", viper.GetString(modeConfigKey), "single/multi/deep")
	bindFlagToConfig(cmd.Flags().Lookup(modeFlagName), modeConfigKey)

	cmd.Flags().IntVarP(&positionFlag, positionFlagName, "p", 0, "0-index position in the reference sequence")
	bindFlagToConfig(cmd.Flags().Lookup(positionFlagName), positionConfigKey)

	cmd.Flags().StringVarP(&aaFlag, aaFlagName, "a", viper.GetString(aaConfigKey), "single-letter amino acid")
	bindFlagToConfig(cmd.Flags().Lookup(aaFlagName), aaConfigKey)

	cmd.Flags().StringVarP(&mlistFlag, mlistFlagName, "l", viper.GetString(mlistConfigKey), mlistHelp)
	bindFlagToConfig(cmd.Flags().Lookup(mlistFlagName), mlistConfigKey)

	cmd.Flags().StringArrayVarP(&regionFlags, regionFlagName, "r", nil, "region BEGIN:END of 0-index residues (can be repeated)")

	cmd.MarkFlagsMutuallyExclusive(aaFlagName, mlistFlagName, regionFlagName)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := ExecuteContext(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return ctx
}

// ExecuteContext runs the root command and cancels ctx on interrupt.
func ExecuteContext(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// regionValues prefers --region flags and falls back to the run.regions config list.
func regionValues(cmd *cobra.Command) []string {
	if flag := cmd.Flags().Lookup(regionFlagName); flag != nil && flag.Changed {
		values, err := cmd.Flags().GetStringArray(regionFlagName)
		if err == nil {
			return values
		}
	}

	return viper.GetStringSlice(regionsConfigKey)
}

func parseRegions(values []string) ([]m.Region, error) {
	regions := make([]m.Region, 0, len(values))

	for _, value := range values {
		region, err := parseRegion(value)
		if err != nil {
			return nil, err
		}

		regions = append(regions, region)
	}

	return regions, nil
}

// parseRegion accepts "BEGIN:END", "BEGIN,END" or "BEGIN END".
func parseRegion(value string) (m.Region, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ':' || r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return m.Region{}, fmt.Errorf("%w: region %q must be BEGIN:END", domain.ErrConfiguration, value)
	}

	begin, err := strconv.Atoi(fields[0])
	if err != nil {
		return m.Region{}, fmt.Errorf("%w: region %q: begin: %w", domain.ErrConfiguration, value, err)
	}

	end, err := strconv.Atoi(fields[1])
	if err != nil {
		return m.Region{}, fmt.Errorf("%w: region %q: end: %w", domain.ErrConfiguration, value, err)
	}

	return m.Region{Begin: begin, End: end}, nil
}
