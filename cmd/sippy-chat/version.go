package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openshift/sippy-chat/pkg/version"
)

// NewVersionCommand prints the commit sippy-chat was built from, or the full build
// info as yaml or json.
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Report version information for sippy-chat",
		// the build is printed on stdout, no need to log it as well
		PersistentPreRun: NoLogVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version.Get()
			const flag = "output"
			of, err := cmd.Flags().GetString(flag)
			if err != nil {
				return errors.Wrapf(err, "error accessing flag %s for command %s", flag, cmd.Name())
			}
			switch of {
			case "":
				fmt.Fprintf(os.Stdout, "sippy-chat built from %s\n", v.GitCommit)
			case "short":
				fmt.Fprintf(os.Stdout, "%s\n", v.GitCommit)
			case "yaml":
				y, err := yaml.Marshal(&v)
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(y))
			case "json":
				y, err := json.MarshalIndent(&v, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(y))
			default:
				return errors.Errorf("invalid output format: %s", of)
			}

			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output format; available options are 'yaml', 'json' and 'short'")
	return cmd
}

// LogVersion is used as a PersistentPreRun function so the build is always in the debug log.
var LogVersion = func(cmd *cobra.Command, args []string) {
	log.WithField("commit", version.Get().GitCommit).Debug("sippy-chat starting")
}

// NoLogVersion is used as an empty PersistentPreRun function.
var NoLogVersion = func(cmd *cobra.Command, args []string) {
}
