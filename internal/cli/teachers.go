package cli

import (
	"github.com/spf13/cobra"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

// NewTeachersCommand creates the teachers command group.
func NewTeachersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "List and inspect teachers",
	}
	cmd.AddCommand(newTeachersListCommand(opts))
	cmd.AddCommand(newTeachersShowCommand(opts))
	return cmd
}

func newTeachersListCommand(opts *RootOptions) *cobra.Command {
	params := dto.TeacherListParams{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teachers with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.Backend().ListTeachers(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&params.Query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort key (id|rating_count|avg_rating)")
	cmd.Flags().IntVar(&params.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 20, "page size")

	return cmd
}

func newTeachersShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a teacher with courses, rating and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.Backend().GetTeacherDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
