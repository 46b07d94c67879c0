package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"propmap/internal/analyze"
	"propmap/internal/diagnostic"
	"propmap/profile"
)

var errInvalidProfile = errors.New("profile has errors")

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a profile against Go source packages",
		Long: `Load the given packages from source, resolve every type and property the
profile names, and print the findings. Exits non-zero when any finding is an
error.`,
		Example: "  propmap check --profile mappings.yaml --packages ./store --packages ./warehouse",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reportError(cmd, a.check(cmd))
		},
	}

	cmd.Flags().String("profile", "", "profile YAML file (required)")
	cmd.Flags().StringSlice("packages", []string{"./..."}, "package patterns to load")
	cmd.Flags().String("dir", "", "directory the package patterns are resolved from")

	return cmd
}

func (a *app) check(cmd *cobra.Command) error {
	path := a.v.GetString("profile")
	if path == "" {
		return errors.New("--profile is required")
	}

	f, err := profile.LoadFile(path)
	if err != nil {
		return err
	}

	patterns := a.v.GetStringSlice("packages")
	a.logger.Debugw("loading packages", "patterns", patterns, "dir", a.v.GetString("dir"))

	analyzer := analyze.NewAnalyzer(
		analyze.WithDir(a.v.GetString("dir")),
		analyze.WithLogger(a.logger.Desugar()),
	)

	graph, err := analyzer.LoadPackages(cmd.Context(), patterns...)
	if err != nil {
		return err
	}

	d := profile.Validate(f, graph)

	out := cmd.OutOrStdout()
	for _, line := range d.Lines() {
		fmt.Fprintln(out, line)
	}

	if d.HasErrors() {
		if d.HasCode(diagnostic.CodeUnknownType) {
			fmt.Fprintf(out, "hint: types are looked up in %s; add their package with --packages\n",
				strings.Join(patterns, ", "))
		}

		return fmt.Errorf("%w: %d error(s)", errInvalidProfile, len(d.Errors))
	}

	fmt.Fprintf(out, "%s: %d mapping(s) ok\n", path, len(f.Mappings))

	return nil
}
