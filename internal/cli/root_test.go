package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SMU-RES/smu-course-review/internal/dataservice"
)

func TestBackendSelection(t *testing.T) {
	opts := &RootOptions{APIURL: "http://localhost:8080"}
	_, ok := opts.Backend().(*dataservice.RemoteService)
	assert.True(t, ok)

	opts.SnapshotPath = "data/db.sqlite"
	_, ok = opts.Backend().(*dataservice.LocalService)
	assert.True(t, ok, "snapshot path takes precedence over the API URL")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "courses")
	assert.Contains(t, names, "teachers")
	assert.Contains(t, names, "departments")
}

func TestRootCommand_WorksWithoutFlags(t *testing.T) {
	cmd := NewRootCommand()

	// The api-url default makes the tool usable with no flags at all, so
	// there is no flag precondition to enforce.
	assert.Equal(t, "http://localhost:8080", cmd.PersistentFlags().Lookup("api-url").DefValue)
	assert.Nil(t, cmd.PersistentPreRunE)
}
