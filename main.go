// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/fem"
	"github.com/pmackenz/SiteResponseTool/inp"
	"github.com/spf13/cobra"
)

// version of siteresp
const version = "1.0.0"

// exit codes
const (
	exitFailed    = 1 // any other failure
	exitConfig    = 2 // malformed input
	exitExhausted = 3 // time step bisection exhausted
)

// command line flags
var (
	verbose bool
	dirout  string
	xlsx    string
	pdf     string
	envfile string
)

var rootCmd = &cobra.Command{
	Use:   "siteresp",
	Short: "1D site-response analyses of layered soil columns",
	Long: `siteresp builds a finite element column from horizontal soil layers over an elastic
bedrock and runs the gravity, permeability and dynamic stages of a site-response analysis.

Input files are .json files; see "siteresp run --help".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		inp.LoadEnv(envfile)
		if !cmd.Flags().Changed("verbose") {
			verbose = inp.EnvBool(inp.EnvVerbose, verbose)
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run <simfile.json>",
	Short: "Run all stages of a simulation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		main, err := newMain(args[0])
		if err != nil {
			return
		}
		return main.Run()
	},
}

var meshCmd = &cobra.Command{
	Use:   "mesh <simfile.json>",
	Short: "Print the discretisation of layers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		sim, err := readSim(args[0])
		if err != nil {
			return
		}
		plan, err := fem.NewPlan(sim)
		if err != nil {
			return
		}
		io.Pf("%v", sim.Layering.String())
		io.Pf("%v", plan)
		io.Pf("Natural period = %g s\n", sim.Layering.NaturalPeriod())
		return
	},
}

var scriptCmd = &cobra.Command{
	Use:   "script <simfile.json>",
	Short: "Write the model script without running any analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		main, err := newMain(args[0])
		if err != nil {
			return
		}
		script, err := main.Ctrl.DryScript()
		if err != nil {
			return
		}
		io.WriteStringToFileD(main.Sim.DirOut, "model.tcl", script)
		return
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of siteresp",
	Run: func(cmd *cobra.Command, args []string) {
		io.Pf("siteresp version %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "show messages")
	pf.StringVar(&dirout, "dirout", "", "output directory; overrides the simulation file")
	pf.StringVar(&envfile, "env", ".env", "file with environment variables")
	runCmd.Flags().StringVar(&xlsx, "xlsx", "", "save records to this spreadsheet")
	runCmd.Flags().StringVar(&pdf, "pdf", "", "save a summary of the run to this pdf file")
	rootCmd.AddCommand(runCmd, meshCmd, scriptCmd, versionCmd)
}

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
			os.Exit(exitFailed)
		}
	}()

	// run command
	err := rootCmd.Execute()
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// readSim reads simulation file and applies command line overrides. The output directory is not
// created here
func readSim(fn string) (sim *inp.Simulation, err error) {
	sim, err = inp.ReadSim(fn, false)
	if err != nil {
		return nil, errors.Join(fem.ErrConfig, err)
	}
	if dirout != "" {
		sim.Data.DirOut = dirout
		sim.DirOut = dirout
	}
	if xlsx != "" {
		sim.Data.Xlsx = xlsx
	}
	if pdf != "" {
		sim.Data.Pdf = pdf
	}
	return
}

// newMain reads simulation file, creates the output directory and builds the column
func newMain(fn string) (main *fem.Main, err error) {
	sim, err := readSim(fn)
	if err != nil {
		return
	}
	err = sim.CreateDirOut()
	if err != nil {
		return nil, errors.Join(fem.ErrConfig, err)
	}
	if verbose {
		io.PfWhite("\nsiteresp version %s\n", version)
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"simulation file", "fn", fn,
			"show messages", "verbose", verbose,
			"output directory", "dirout", sim.DirOut,
		))
	}
	return fem.NewMainSim(sim, verbose)
}

// exitCode maps errors to exit codes
func exitCode(err error) int {
	switch {
	case errors.Is(err, fem.ErrConfig):
		return exitConfig
	case errors.Is(err, fem.ErrExhausted):
		return exitExhausted
	}
	return exitFailed
}
