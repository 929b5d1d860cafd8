package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SMU-RES/smu-course-review/internal/app/models/dto"
)

// NewCoursesCommand creates the courses command group.
func NewCoursesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List and inspect courses",
	}
	cmd.AddCommand(newCoursesListCommand(opts))
	cmd.AddCommand(newCoursesShowCommand(opts))
	return cmd
}

func newCoursesListCommand(opts *RootOptions) *cobra.Command {
	params := dto.CourseListParams{}
	var department int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses with optional filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("department") {
				params.Department = &department
			}

			result, err := opts.Backend().ListCourses(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&params.Query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&params.Field, "field", "", "restrict search to a field (name)")
	cmd.Flags().Int64Var(&department, "department", 0, "filter by department ID")
	cmd.Flags().StringVar(&params.Sort, "sort", "", "sort key (id|rating_count|avg_rating)")
	cmd.Flags().IntVar(&params.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 20, "page size")

	return cmd
}

func newCoursesShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a course with teachers, rating and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			result, err := opts.Backend().GetCourseDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
