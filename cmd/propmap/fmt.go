package main

import (
	"errors"

	"github.com/spf13/cobra"

	"propmap/profile"
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite a profile in canonical form",
		Long: `Parse a profile, expand the 121 shorthand into fields, sort ignore lists and
print the result. With --write the file is rewritten in place.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return reportError(cmd, a.format(cmd))
		},
	}

	cmd.Flags().String("profile", "", "profile YAML file (required)")
	cmd.Flags().Bool("write", false, "write the result back to the profile file")

	return cmd
}

func (a *app) format(cmd *cobra.Command) error {
	path := a.v.GetString("profile")
	if path == "" {
		return errors.New("--profile is required")
	}

	f, err := profile.LoadFile(path)
	if err != nil {
		return err
	}

	profile.Normalize(f)

	if a.v.GetBool("write") {
		a.logger.Debugw("rewriting profile", "path", path)
		return profile.WriteFile(f, path)
	}

	data, err := profile.Marshal(f)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
