package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/mediatree/internal/media"
)

// PropertiesResult lists the properties a tree node may group by.
type PropertiesResult struct {
	Properties []string `json:"properties"`
}

func (r PropertiesResult) String() string {
	return strings.Join(r.Properties, "\n") + "\n"
}

// NewPropertiesCommand creates the properties command.
func NewPropertiesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "properties",
		Short:         "List the record properties available for grouping",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newFormatter(rootOpts, cmd).Success(PropertiesResult{Properties: media.Properties()})
		},
	}
}
