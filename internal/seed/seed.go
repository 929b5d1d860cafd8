package seed

import (
	"context"
	"fmt"

	"github.com/SMU-RES/smu-course-review/internal/pkg/logger"
)

// defaultDepartments are created on startup so course imports can reference
// them by name. Inserts are idempotent.
var defaultDepartments = []string{
	"Computer Science",
	"Mathematics",
	"Physics",
	"Foreign Languages",
	"Economics",
	"Law",
	"Physical Education",
	"General Education",
}

// departmentCreator is the repository surface seeding needs.
type departmentCreator interface {
	Create(ctx context.Context, name string) (int64, error)
}

// SeedDepartments inserts the default departments if they are missing.
func SeedDepartments(ctx context.Context, departments departmentCreator) error {
	for _, name := range defaultDepartments {
		if _, err := departments.Create(ctx, name); err != nil {
			return fmt.Errorf("error seeding department %q: %w", name, err)
		}
	}

	logger.Debug().Int("count", len(defaultDepartments)).Msg("Default departments ensured")
	return nil
}
