package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"

	"github.com/datawire/wheelhouse/pkg/cliutil"
	"github.com/datawire/wheelhouse/pkg/simpleindex"
)

func init() {
	var (
		flagCfg    simpleindex.Config
		configFile string
	)
	cmd := &cobra.Command{
		Use:   "generate [flags]",
		Short: "Generate a static package index from a directory of wheels",
		Long: "Scan a directory of built wheel files and (re)generate a static PEP 503 " +
			"\"simple repository\" index for them: a root page listing every project, and " +
			"one page per project listing the download links for its wheels.  The wheels " +
			"themselves are not read or copied; only their filenames matter, and the " +
			"download links are constructed by joining --base-url with each filename." +
			"\n\n" +
			"The output directory is regenerated from scratch on every run, so pages for " +
			"projects that are no longer present do not linger.  A file with an invalid " +
			"wheel filename is skipped with a warning; it does not abort the run.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(0)),
		RunE: func(flags *cobra.Command, _ []string) error {
			ctx := flags.Context()

			cfg := flagCfg
			if configFile != "" {
				yamlBytes, err := os.ReadFile(configFile)
				if err != nil {
					return err
				}
				if err := yaml.Unmarshal(yamlBytes, &cfg, yaml.DisallowUnknownFields); err != nil {
					return fmt.Errorf("%s: %w", configFile, err)
				}
				// Explicit flags win over the config file.
				flags.Flags().Visit(func(flag *pflag.Flag) {
					switch flag.Name {
					case "wheels-dir":
						cfg.WheelsDir = flagCfg.WheelsDir
					case "output-dir":
						cfg.OutputDir = flagCfg.OutputDir
					case "base-url":
						cfg.BaseURL = flagCfg.BaseURL
					}
				})
			}
			if cfg.WheelsDir == "" || cfg.OutputDir == "" || cfg.BaseURL == "" {
				return flags.FlagErrorFunc()(flags, fmt.Errorf(
					"each of --wheels-dir, --output-dir, and --base-url is required (by flag or by --config)"))
			}

			summary, err := simpleindex.Generate(ctx, cfg)
			if err != nil {
				return err
			}

			out := flags.OutOrStdout()
			fmt.Fprintf(out, "scanned %d candidate files in %q\n", summary.Scanned, cfg.WheelsDir)
			for _, filename := range summary.Rejected {
				fmt.Fprintf(out, "rejected %q\n", filename)
			}
			fmt.Fprintf(out, "indexed %d wheels across %d projects in %q\n",
				summary.Parsed, len(summary.Packages), cfg.OutputDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagCfg.WheelsDir, "wheels-dir", "",
		"Scan `IN_DIRECTORY` (non-recursively) for .whl files")
	cmd.Flags().StringVar(&flagCfg.OutputDir, "output-dir", "",
		"(Re)generate the index tree in `OUT_DIRECTORY`")
	cmd.Flags().StringVar(&flagCfg.BaseURL, "base-url", "",
		"Construct download links as `BASE_URL`/FILENAME (e.g. a release download URL)")
	cmd.Flags().StringVar(&configFile, "config", "",
		"Read the three settings above from `IN_YAML_FILE`; explicit flags win")
	argparserIndex.AddCommand(cmd)
}
