package main

import (
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/datawire/wheelhouse/pkg/cliutil"
	"github.com/datawire/wheelhouse/pkg/python/pep503"
	"github.com/datawire/wheelhouse/pkg/python/pep629"
	"github.com/datawire/wheelhouse/pkg/python/pypa/bdist"
)

func init() {
	cmd := &cobra.Command{
		Use:   "verify [flags] INDEX_URL",
		Short: "Crawl a package index and check that it is well-formed",
		Long: "Crawl the root page of a simple repository index and then every project " +
			"page, the way a package installer would, and report a file count per " +
			"project.  A link whose text is not a valid wheel filename is warned about; " +
			"an unreachable page, or a page declaring an incompatible repository API " +
			"version, is an error.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			ctx := flags.Context()
			client := pep503.Client{
				BaseURL:  args[0],
				HTMLHook: pep629.HTMLVersionCheck,
			}

			projects, err := client.ListPackages(ctx)
			if err != nil {
				return err
			}
			badLinks := 0
			for _, project := range projects {
				files, err := project.ListFiles(ctx)
				if err != nil {
					return err
				}
				for _, file := range files {
					if _, err := bdist.ParseFilename(file.Text); err != nil {
						dlog.Warnf(ctx, "%s: %v", project.Text, err)
						badLinks++
					}
				}
				fmt.Fprintf(flags.OutOrStdout(), "%s: %d files\n", project.Text, len(files))
			}
			fmt.Fprintf(flags.OutOrStdout(), "verified %d projects", len(projects))
			if badLinks > 0 {
				fmt.Fprintf(flags.OutOrStdout(), " (%d links with malformed filenames)", badLinks)
			}
			fmt.Fprintln(flags.OutOrStdout())
			return nil
		},
	}
	argparserIndex.AddCommand(cmd)
}
