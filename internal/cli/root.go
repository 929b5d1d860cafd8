// Package cli implements reviewctl, a small inspection tool that reads the
// review platform through either backend and prints JSON.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/SMU-RES/smu-course-review/internal/dataservice"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL       string
	SnapshotPath string
}

// Backend selects the data service from the global flags. The snapshot wins
// when both are given, since pointing at a file is the more deliberate choice.
func (o *RootOptions) Backend() dataservice.DataService {
	if o.SnapshotPath != "" {
		return dataservice.NewLocalService(o.SnapshotPath)
	}
	return dataservice.NewRemoteService(o.APIURL)
}

// NewRootCommand creates the root command for reviewctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "reviewctl",
		Short: "Inspect the course review platform",
		Long:  "Query courses, teachers and departments from the live API or a SQLite snapshot.",
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "http://localhost:8080", "base URL of the live API")
	cmd.PersistentFlags().StringVar(&opts.SnapshotPath, "snapshot", "", "path to a SQLite snapshot (overrides --api-url)")

	cmd.AddCommand(NewCoursesCommand(opts))
	cmd.AddCommand(NewTeachersCommand(opts))
	cmd.AddCommand(NewDepartmentsCommand(opts))

	return cmd
}
