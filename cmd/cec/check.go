package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/packagefactory/componentengine/compile"
	"github.com/packagefactory/componentengine/config"
	"github.com/packagefactory/componentengine/pkg"
	"github.com/packagefactory/componentengine/source"
	"github.com/spf13/cobra"
)

// engineVersion is checked against the engine-version of manifests.
var engineVersion = pkg.Version{0, 1, 0}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var project string
	var verbose bool
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check modules and everything they import",
		Long: "Check modules and everything they import.\n\n" +
			"Without files, the entries of the project whose manifest is in the\n" +
			"project directory or any of its parents are checked, or all of its\n" +
			"modules if it has no entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, paths, err := checkSession(flags, project, args)
			if err != nil {
				return err
			}

			units, err := s.CompileAll(paths...)
			if verbose {
				color.NoColor = color.NoColor || !s.Options.Colors
				for _, u := range units {
					fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("Module:"), u.Path)
					for _, name := range u.Info.ExportNames() {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s %s: %s\n", color.CyanString("-"), name, u.Info.Exports[name])
					}
				}
			}

			if err := emit(cmd.ErrOrStderr(), flags, s.Options, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d modules checked\n", len(units))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", ".", "Directory of the project")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Display the exports of every module")
	return cmd
}

// checkSession returns the session and the paths of the modules to check.
func checkSession(flags *globalFlags, project string, files []string) (*compile.Session, []string, error) {
	if len(files) > 0 {
		opts, err := flags.options(config.Default())
		if err != nil {
			return nil, nil, err
		}
		return compile.NewSession(source.NewFsLoader("."), opts), files, nil
	}

	m, err := pkg.Load(project)
	if err != nil {
		return nil, nil, err
	}

	if err := m.CheckEngine(engineVersion); err != nil {
		return nil, nil, err
	}

	if m.Options, err = flags.options(m.Options); err != nil {
		return nil, nil, err
	}

	paths, err := m.EntryPaths()
	if err != nil {
		return nil, nil, err
	}

	if len(paths) == 0 {
		if paths, err = m.Modules(); err != nil {
			return nil, nil, err
		}
	}

	return compile.NewProjectSession(m), paths, nil
}
