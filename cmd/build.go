package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/legend-exp/legendgeom/legend"
)

var (
	// CLI flags for geometry construction
	hall      string // Underground hall hosting the tank (lngs, snolab)
	filled    bool   // Fill every crystal slot with the ideal template
	detectors string // Detector configuration CSV for real crystal shapes
	specFile  string // Setup spec YAML; explicitly set flags override it
	output    string // Output GDML path
)

// setupFromFlags assembles the setup spec from the --config file and
// the construction flags. Flags set on the command line win over the
// file values.
func setupFromFlags(cmd *cobra.Command) (*legend.SetupSpec, error) {
	spec := &legend.SetupSpec{}
	if specFile != "" {
		loaded, err := legend.LoadSetupSpec(specFile)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}
	if cmd.Flags().Changed("hall") {
		spec.Hall = legend.Hall(hall)
	}
	if cmd.Flags().Changed("filled") {
		spec.Filled = filled
	}
	if cmd.Flags().Changed("detectors") {
		spec.Detectors = detectors
	}
	return spec, nil
}

// buildCmd constructs the baseline geometry and exports it to GDML
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the baseline geometry and write it to GDML",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		spec, err := setupFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("Invalid setup spec: %v", err)
		}
		out := output
		if spec.Output != "" && !cmd.Flags().Changed("out") {
			out = spec.Output
		}

		setup, err := legend.Build(spec)
		if err != nil {
			logrus.Fatalf("Building geometry failed: %v", err)
		}
		if err := setup.WriteGDML(out); err != nil {
			logrus.Fatalf("Writing GDML failed: %v", err)
		}

		setup.Summary().Print()
		fmt.Printf("GDML written to : %s\n", out)

		logrus.Info("Geometry complete.")
	},
}

// init sets up the build flags
func init() {
	buildCmd.Flags().StringVar(&hall, "hall", "lngs", "Underground hall (lngs, snolab)")
	buildCmd.Flags().BoolVar(&filled, "filled", false, "Fill every crystal slot with the ideal template")
	buildCmd.Flags().StringVar(&detectors, "detectors", "", "Detector configuration CSV")
	buildCmd.Flags().StringVar(&specFile, "config", "", "Setup spec YAML file")
	buildCmd.Flags().StringVar(&output, "out", "legend1000.gdml", "Output GDML path")

	rootCmd.AddCommand(buildCmd)
}
