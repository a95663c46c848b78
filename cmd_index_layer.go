package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datawire/wheelhouse/pkg/cliutil"
	"github.com/datawire/wheelhouse/pkg/dir"
	"github.com/datawire/wheelhouse/pkg/reproducible"
)

func parseChown(str string) (uid, gid int, err error) {
	parts := strings.SplitN(str, ":", 2)
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if uid, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("--chown: %w", err)
	}
	if gid, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("--chown: %w", err)
	}
	return uid, gid, nil
}

func init() {
	var (
		flagPrefix string
		flagChown  string
	)
	cmd := &cobra.Command{
		Use:   "layer [flags] IN_DIRNAME >OUT_LAYERFILE",
		Short: "Package a generated index tree as an OCI layer",
		Long: "Given a generated index directory, write an uncompressed OCI layer tarball " +
			"to stdout, suitable for appending to a static-content web server image.  " +
			"File timestamps are clamped to SOURCE_DATE_EPOCH (if set), so that the same " +
			"index tree packages to the same layer.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			var prefix *dir.Prefix
			if flagChown != "" && flagPrefix == "" {
				return flags.FlagErrorFunc()(flags, fmt.Errorf("--chown requires --add-prefix"))
			}
			if flagPrefix != "" {
				prefix = &dir.Prefix{DirName: flagPrefix}
				if flagChown != "" {
					uid, gid, err := parseChown(flagChown)
					if err != nil {
						return flags.FlagErrorFunc()(flags, err)
					}
					prefix.UID = uid
					prefix.GID = gid
				}
			}
			layer, err := dir.LayerFromDir(args[0], prefix, reproducible.Now())
			if err != nil {
				return err
			}
			return dir.WriteLayer(layer, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagPrefix, "add-prefix", "",
		`Add a prefix to the filenames in the layer; forward-slash separated and absolute but NOT starting with a slash.  For example, "var/www/simple".`)
	cmd.Flags().StringVar(&flagChown, "chown", "",
		"Record `UID[:GID]` as the owner of every entry in the layer (requires --add-prefix)")
	argparserIndex.AddCommand(cmd)
}
