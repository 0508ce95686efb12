/*
Copyright © 2026 the superdrop authors.
This file is part of superdrop.

superdrop is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

superdrop is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with superdrop.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package sdmutil wires the command tree, configuration binding, and
// logging setup shared by the superdrop binary's subcommands.
package sdmutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the superdrop release version, set at build time via
// -ldflags "-X .../internal/sdmutil.Version=..." in production builds.
var Version = "dev"

// Cfg holds every configuration option the command tree exposes, bound
// through viper so each can come from a flag, a config file, or an
// SDM_-prefixed environment variable.
type Cfg struct {
	*viper.Viper

	inputFiles []string

	Root, versionCmd, runCmd, validateCmd *cobra.Command

	Log *logrus.Logger
}

// InputFiles returns the names of configuration options that name an
// input file, used by validate to check file existence up front.
func (cfg *Cfg) InputFiles() []string { return cfg.inputFiles }

var options = []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	isInputFile            bool
}{
	{name: "GridFile", usage: "path to the framed-binary gridbox map file.", isInputFile: true},
	{name: "ParticlesFile", usage: "path to the framed-binary initial particle file.", isInputFile: true},
	{name: "OutputDir", usage: "directory the observer writes gob-encoded snapshots into.", defaultVal: "sdm_output"},
	{name: "CouplingStepSeconds", usage: "seconds between exchanges with the coupled thermodynamics driver.", defaultVal: 2.0},
	{name: "MotionSubstepSeconds", usage: "seconds between motion kernel invocations.", defaultVal: 1.0},
	{name: "CondensationSubstepSeconds", usage: "seconds between condensation solver invocations.", defaultVal: 1.0},
	{name: "CollisionSubstepSeconds", usage: "seconds between collision engine invocations.", defaultVal: 1.0},
	{name: "EndTimeSeconds", usage: "simulated time at which the run stops.", defaultVal: 3600.0},
	{name: "RandomSeed", usage: "seed for the per-gridbox RNG pool.", defaultVal: int64(42)},
	{name: "EnforceCFL", usage: "fail the run if a particle's displacement exceeds its gridbox extent.", defaultVal: true},
	{name: "ApplyCondensationBackReaction", usage: "feed condensation mass/energy changes back into gridbox qv/qc/T.", defaultVal: true},
	{name: "LogLevel", usage: "logrus level: debug, info, warn, error.", defaultVal: "info", shorthand: "v"},
}

// InitializeConfig builds the root command, its subcommands, and binds
// every option above to viper with the SDM_ environment prefix.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New(), Log: logrus.New()}

	cfg.Root = &cobra.Command{
		Use:   "superdrop",
		Short: "A Lagrangian superdroplet cloud microphysics engine.",
		Long: `superdrop advances a population of computational superdroplets through
a decomposed Eulerian thermodynamic grid under sedimentation, prescribed or
coupled flow, condensation/evaporation, and stochastic collision-coalescence.

Configuration can come from a config file (--config), command-line flags, or
environment variables of the form SDM_<Option>. See
https://github.com/spf13/viper for the configuration file formats supported.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := setConfig(cfg); err != nil {
				return err
			}
			return setLogLevel(cfg)
		},
	}

	cfg.runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a simulation to EndTimeSeconds.",
		Long: `run loads the configured grid and particle files, constructs the data
plane driver, and advances it one coupling step at a time until EndTimeSeconds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cfg)
		},
		DisableAutoGenTag: true,
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("superdrop v%s\n", Version)
		},
		DisableAutoGenTag: true,
	}

	cfg.validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and input files without running.",
		Long:  `validate checks that every configured input file exists, and that the coupling step, the substep periods and the end time are positive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
		DisableAutoGenTag: true,
	}

	cfg.Root.PersistentFlags().String("config", "", "path to a configuration file.")
	cfg.BindPFlag("config", cfg.Root.PersistentFlags().Lookup("config"))
	cfg.Root.AddCommand(cfg.versionCmd, cfg.runCmd, cfg.validateCmd)

	cfg.SetEnvPrefix("SDM")
	cfg.AutomaticEnv()

	flags := pflag.NewFlagSet("superdrop", pflag.ExitOnError)
	for _, o := range options {
		if o.isInputFile {
			cfg.inputFiles = append(cfg.inputFiles, o.name)
		}
		switch v := o.defaultVal.(type) {
		case string:
			flags.StringP(o.name, o.shorthand, v, o.usage)
		case int64:
			flags.Int64(o.name, v, o.usage)
		case float64:
			flags.Float64(o.name, v, o.usage)
		case bool:
			flags.Bool(o.name, v, o.usage)
		default:
			flags.String(o.name, "", o.usage)
		}
		cfg.BindPFlag(o.name, flags.Lookup(o.name))
	}
	cfg.runCmd.Flags().AddFlagSet(flags)
	cfg.validateCmd.Flags().AddFlagSet(flags)

	return cfg
}

// setConfig reads the configured config file into viper, if one was
// given on the command line.
func setConfig(cfg *Cfg) error {
	cfgpath := cfg.GetString("config")
	if cfgpath == "" {
		return nil
	}
	cfg.SetConfigFile(cfgpath)
	if err := cfg.ReadInConfig(); err != nil {
		return fmt.Errorf("superdrop: problem reading configuration file: %v", err)
	}
	return nil
}

func setLogLevel(cfg *Cfg) error {
	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("superdrop: invalid LogLevel: %v", err)
	}
	cfg.Log.SetLevel(level)
	return nil
}
