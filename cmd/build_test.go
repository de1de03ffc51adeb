package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legend-exp/legendgeom/legend"
)

// newFlagCommand binds the construction flag variables to a fresh
// command so each test gets clean Changed state.
func newFlagCommand(t *testing.T) *cobra.Command {
	t.Helper()
	origHall, origFilled, origDetectors, origSpecFile := hall, filled, detectors, specFile
	t.Cleanup(func() {
		hall, filled, detectors, specFile = origHall, origFilled, origDetectors, origSpecFile
	})
	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&hall, "hall", "lngs", "")
	cmd.Flags().BoolVar(&filled, "filled", false, "")
	cmd.Flags().StringVar(&detectors, "detectors", "", "")
	return cmd
}

func TestSetupFromFlags_NoConfig_DefaultsOnly(t *testing.T) {
	// GIVEN no spec file and untouched flags
	cmd := newFlagCommand(t)
	specFile = ""

	// WHEN assembling the setup spec
	spec, err := setupFromFlags(cmd)
	require.NoError(t, err)

	// THEN the zero spec comes back and validates
	assert.Equal(t, legend.Hall(""), spec.Hall)
	assert.False(t, spec.Filled)
	require.NoError(t, spec.Validate())
}

func TestSetupFromFlags_ExplicitFlagWinsOverConfig(t *testing.T) {
	// GIVEN a spec file choosing lngs and a command line choosing snolab
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hall: lngs\nfilled: true\n"), 0644))
	cmd := newFlagCommand(t)
	specFile = path
	require.NoError(t, cmd.Flags().Set("hall", "snolab"))

	// WHEN assembling the setup spec
	spec, err := setupFromFlags(cmd)
	require.NoError(t, err)

	// THEN the explicit flag wins and file values fill the rest
	assert.Equal(t, legend.HallSNOLab, spec.Hall)
	assert.True(t, spec.Filled)
}

func TestSetupFromFlags_BadConfig_ReturnsError(t *testing.T) {
	// GIVEN a spec file with an unknown key
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hal: lngs\n"), 0644))
	cmd := newFlagCommand(t)
	specFile = path

	// WHEN assembling the setup spec
	_, err := setupFromFlags(cmd)

	// THEN the strict decoder rejects it
	assert.Error(t, err)
}
