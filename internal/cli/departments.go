package cli

import (
	"github.com/spf13/cobra"
)

// NewDepartmentsCommand creates the departments command.
func NewDepartmentsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "List departments with course counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.Backend().ListDepartments(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
