package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seq2many.dev/pkg/seq2many/internal/domain"
	domainmocks "seq2many.dev/pkg/seq2many/internal/domain/mocks"
	m "seq2many.dev/pkg/seq2many/internal/model"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    m.Region
		wantErr bool
	}{
		{"colon", "0:10", m.Region{Begin: 0, End: 10}, false},
		{"comma", "3,7", m.Region{Begin: 3, End: 7}, false},
		{"space", "5 9", m.Region{Begin: 5, End: 9}, false},
		{"empty region", "4:4", m.Region{Begin: 4, End: 4}, false},
		{"single value", "10", m.Region{}, true},
		{"three values", "1:2:3", m.Region{}, true},
		{"non numeric begin", "a:3", m.Region{}, true},
		{"non numeric end", "1:b", m.Region{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRegion(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRegions(t *testing.T) {
	regions, err := parseRegions([]string{"0:3", "10:12"})
	require.NoError(t, err)
	assert.Equal(t, []m.Region{{Begin: 0, End: 3}, {Begin: 10, End: 12}}, regions)

	regions, err = parseRegions(nil)
	require.NoError(t, err)
	assert.Empty(t, regions)

	_, err = parseRegions([]string{"0:3", "oops"})
	require.Error(t, err)
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "seq2many", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{refFlagName, modeFlagName, positionFlagName, aaFlagName, mlistFlagName, regionFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	for _, name := range []string{outputFlagName, manifestFlagName, strictModeFlagName, verboseFlagName, logFileFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "deep mutational scanning")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, ui)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, manifestStore)
	assert.NotNil(t, workflow)
}

func withMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

func executeRoot(t *testing.T, args ...string) error {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(newDistanceCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-file=" + filepath.Join(t.TempDir(), "seq2many.log")}, args...))

	return cmd.Execute()
}

func TestRootCmd_SingleMode(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Reference == m.Path("ref.fasta") &&
			args.Mode == "single" &&
			args.Position == 3 &&
			args.PositionSet &&
			args.AminoAcid == "K" &&
			args.Output == m.Path(".") &&
			!args.StrictMode &&
			!args.Manifest
	})).Return(nil)

	err := executeRoot(t, "-i", "ref.fasta", "-p", "3", "-a", "K")
	require.NoError(t, err)
}

func TestRootCmd_PositionNotSetWhenFlagMissing(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return !args.PositionSet
	})).Return(nil)

	err := executeRoot(t, "-i", "ref.fasta", "-a", "K")
	require.NoError(t, err)
}

func TestRootCmd_NegativePositionIsPassedThrough(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.PositionSet && args.Position == -1
	})).Return(nil)

	err := executeRoot(t, "-i", "ref.fasta", "--position=-1", "-a", "K")
	require.NoError(t, err)
}

func TestRootCmd_MultiMode(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Mode == "multi" &&
			args.MutationList == m.Path("mutations.txt") &&
			args.Output == m.Path("out")
	})).Return(nil)

	err := executeRoot(t, "-i", "ref.fasta", "-m", "multi", "-l", "mutations.txt", "-o", "out")
	require.NoError(t, err)
}

func TestRootCmd_DeepModeWithRegions(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Mode == "deep" &&
			len(args.Regions) == 2 &&
			args.Regions[0] == m.Region{Begin: 0, End: 3} &&
			args.Regions[1] == m.Region{Begin: 5, End: 8} &&
			args.Manifest
	})).Return(nil)

	err := executeRoot(t, "-i", "ref.fasta", "-m", "deep", "-r", "0:3", "-r", "5,8", "--manifest")
	require.NoError(t, err)
}

func TestRootCmd_StrictModeFlag(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	mockWorkflow.On("Run", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Mode == "triple" && args.StrictMode
	})).Return(domain.ErrInvalidMode)

	err := executeRoot(t, "-i", "ref.fasta", "-m", "triple", "--strict-mode")
	require.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestRootCmd_InvalidRegionDoesNotRun(t *testing.T) {
	withMockWorkflow(t)

	err := executeRoot(t, "-i", "ref.fasta", "-m", "deep", "-r", "0-3")
	require.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRootCmd_ExclusiveInputs(t *testing.T) {
	withMockWorkflow(t)

	err := executeRoot(t, "-i", "ref.fasta", "-a", "K", "-l", "mutations.txt")
	require.Error(t, err)
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	withMockWorkflow(t)

	err := executeRoot(t, "-i", "ref.fasta", "extra")
	require.Error(t, err)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // exits with status 1
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	if exitErr, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}
