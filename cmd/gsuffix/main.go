// Command gsuffix finds the longest contiguous byte sequence shared by at
// least two input files.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/outofforest/gsuffix"
)

type options struct {
	verbose bool
	json    bool
}

func parseFlags(args []string) (options, []string, error) {
	fs := pflag.NewFlagSet("gsuffix", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "log construction progress")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	return options{verbose: *verbose, json: *asJSON}, fs.Args(), nil
}

// readInputs reads every path in order, accumulating per-file errors with
// multierr rather than aborting on the first failure.
func readInputs(paths []string) ([][]byte, error) {
	inputs := make([][]byte, len(paths))
	var err error
	for i, path := range paths {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			err = multierr.Append(err, errors.Wrapf(readErr, "read %s", path))
			continue
		}
		inputs[i] = data
	}
	return inputs, err
}

type jsonOccurrence struct {
	Input int `json:"input"`
	Start int `json:"start"`
}

type jsonResult struct {
	Length      int              `json:"length"`
	Occurrences []jsonOccurrence `json:"occurrences"`
}

func run(args []string, stdout *os.File, logger *zap.Logger) error {
	opts, paths, err := parseFlags(args)
	if err != nil {
		return err
	}
	if len(paths) < 2 {
		return errors.New("at least two input files are required")
	}

	inputs, err := readInputs(paths)
	if err != nil {
		return err
	}

	if !opts.verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}
	for i, in := range inputs {
		logger.Debug("loaded input", zap.String("path", paths[i]), zap.Int("bytes", len(in)))
	}

	tree, err := gsuffix.Build(inputs)
	if err != nil {
		return errors.Wrap(err, "build suffix tree")
	}
	logger.Debug("built tree", zap.Int("nodes", tree.NumNodes()))

	result, ok := gsuffix.LongestCommon(tree)
	if !ok {
		fmt.Fprintln(stdout, "no substring is shared by two or more inputs")
		return nil
	}
	logger.Debug("found longest common sublist",
		zap.Int("length", result.Length), zap.Int("witnesses", len(result.Occurrences)))

	if opts.json {
		out := jsonResult{Length: result.Length}
		for _, o := range result.Occurrences {
			out.Occurrences = append(out.Occurrences, jsonOccurrence{
				Input: o.Index,
				Start: o.Start(tree.Sequence().RawLen(o.Index)),
			})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(stdout, "longest shared byte sequence: %d bytes\n", result.Length)
	for _, o := range result.Occurrences {
		start := o.Start(tree.Sequence().RawLen(o.Index))
		fmt.Fprintf(stdout, "  %s: offset %d\n", paths[o.Index], start)
	}
	return nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
