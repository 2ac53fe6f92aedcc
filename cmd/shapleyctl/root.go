// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IDEAL-Lab/shapley-value-simple-game/dataset"
	"github.com/IDEAL-Lab/shapley-value-simple-game/shapley"
)

// args holds the parsed CLI flags.
type args struct {
	dataset       string
	csvDir        string
	assignmentDir string
	output        string
	method        string
	sampleSize    int
	numThreads    int
}

func newRootCmd() *cobra.Command {
	a := &args{}
	logger := logrus.New()

	cmd := &cobra.Command{
		Use:   "shapleyctl",
		Short: "compute Shapley values for data owners in a boolean-query-provenance game",
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			return run(logger, a)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.dataset, "dataset", "d", "", "dataset name (must have a registered join plan)")
	flags.StringVarP(&a.csvDir, "csv_dir", "c", "", "directory of source CSV files")
	flags.StringVarP(&a.assignmentDir, "assignment_dir", "a", "", "directory of owner assignment metadata (optional)")
	flags.StringVarP(&a.output, "output", "o", "", "output JSON file")
	flags.StringVarP(&a.method, "method", "m", "", "trad | perm | iusv | rdsv (and rdsv-no-{vertical,horizontal,hybrid})")
	flags.IntVarP(&a.sampleSize, "sample_size", "s", 0, "sample size (required for perm)")
	flags.IntVarP(&a.numThreads, "num_threads", "t", 0, "number of OS threads to use (0 = runtime default)")
	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("csv_dir")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("method")

	return cmd
}

func run(logger *logrus.Logger, a *args) error {
	logger.WithFields(logrus.Fields{
		"dataset": a.dataset, "csv_dir": a.csvDir, "assignment_dir": a.assignmentDir,
		"output": a.output, "method": a.method, "sample_size": a.sampleSize, "num_threads": a.numThreads,
	}).Info("args")

	if a.numThreads > 0 {
		runtime.GOMAXPROCS(a.numThreads)
	}

	method, err := shapley.ParseMethod(a.method)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigName("shapleyctl")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("shapleyctl: reading config: %w", err)
		}
	}
	registry, err := dataset.RegistryFromViper(v)
	if err != nil {
		return err
	}

	begin := time.Now()
	beginLoad := time.Now()
	ds, err := dataset.Load(logger, a.dataset, a.csvDir, a.assignmentDir)
	if err != nil {
		return err
	}
	loadTime := time.Since(beginLoad)

	games, err := dataset.GamesFromDataSet(registry, ds)
	if err != nil {
		return err
	}
	logger.WithField("num_games", len(games)).Info("games generated")

	opts := shapley.Options{SampleSize: a.sampleSize}
	if method == shapley.Permutation {
		if a.sampleSize <= 0 {
			return fmt.Errorf("shapleyctl: method perm requires --sample_size")
		}
		opts.RNG = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	beginCal := time.Now()
	values, err := shapley.ComputeAll(games, method, opts)
	if err != nil {
		return err
	}
	svCalTime := time.Since(beginCal)
	logger.WithField("elapsed", svCalTime).Info("sv_cal done")

	totalTime := time.Since(begin)
	result := shapley.NewSVResult(values, totalTime, loadTime, svCalTime)

	return writeResult(a, result)
}

// writeResult marshals result and appends the CLI-only fields (method,
// csv_dir, assignment_dir, num_threads, sample_size) onto the serialized
// SVResult rather than folding them into the struct that the core
// computation produces.
func writeResult(a *args, result shapley.SVResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	obj["method"] = a.method
	obj["csv_dir"] = a.csvDir
	obj["assignment_dir"] = a.assignmentDir
	obj["num_threads"] = optionalInt(a.numThreads)
	obj["sample_size"] = optionalInt(a.sampleSize)

	out, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	f, err := os.Create(a.output)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(out)
	return err
}

// optionalInt renders a CLI integer flag as nil (JSON null) when unset.
func optionalInt(v int) any {
	if v <= 0 {
		return nil
	}
	return v
}
