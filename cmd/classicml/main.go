// Command classicml runs the classical ML and text-processing demonstrations.
//
//	classicml demo ml --plot-dir out --save-dir out
//	classicml demo nlp --log-level debug
package main

import (
	"log/slog"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/classicml/config"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
)

type options struct {
	configPath string
	logLevel   string
	profile    string
	profileDir string
	plotDir    string
	saveDir    string

	cfg     *config.Config
	stopper interface{ Stop() }
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "classicml",
		Short:         "Classical machine learning and text analysis from first principles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := log.SetupLogger(opts.logLevel); err != nil {
				return err
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return opts.startProfile()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.stopper != nil {
				opts.stopper.Stop()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Hyperparameter file (yaml, toml or json).")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error.")
	flags.StringVar(&opts.profile, "profile", "", "Profile the run: cpu or mem.")
	flags.StringVar(&opts.profileDir, "profile-dir", ".", "Directory for profile output.")

	demo := &cobra.Command{
		Use:   "demo",
		Short: "Run a demonstration on built-in sample data",
	}
	demo.PersistentFlags().StringVar(&opts.plotDir, "plot-dir", "", "Write learning-curve and cluster PNGs here.")
	demo.PersistentFlags().StringVar(&opts.saveDir, "save-dir", "", "Write JSON snapshots of fitted models here.")
	demo.AddCommand(
		&cobra.Command{
			Use:   "ml",
			Short: "Linear regression, KNN, decision tree, K-means and an XOR network",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runML(cmd.OutOrStdout(), opts)
			},
		},
		&cobra.Command{
			Use:   "nlp",
			Short: "Preprocessing, Naive Bayes, TF-IDF, sentiment and similarity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runNLP(cmd.OutOrStdout(), opts)
			},
		},
	)
	root.AddCommand(demo)
	return root
}

func (o *options) startProfile() error {
	switch o.profile {
	case "":
		return nil
	case "cpu":
		o.stopper = profile.Start(profile.CPUProfile, profile.ProfilePath(o.profileDir), profile.Quiet, profile.NoShutdownHook)
	case "mem":
		o.stopper = profile.Start(profile.MemProfile, profile.ProfilePath(o.profileDir), profile.Quiet, profile.NoShutdownHook)
	default:
		return errors.NewValidationError("profile", "must be cpu or mem", o.profile)
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("classicml failed", log.ErrAttr(err))
		os.Exit(1)
	}
}
