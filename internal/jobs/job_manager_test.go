package jobs_test

import (
	"errors"
	"testing"

	"foodloop/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (f fakeJob) Name() string { return f.name }

func (f fakeJob) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f fakeJob) Stop() {
	*f.log = append(*f.log, "stop "+f.name)
}

func TestJobManager(t *testing.T) {
	t.Run("should start in order and stop in reverse", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(discardLogger(), fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("should stop started jobs when one fails", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(discardLogger(),
			fakeJob{name: "a", log: &log},
			fakeJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
			fakeJob{name: "c", log: &log},
		)

		err := jm.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to start b")
		assert.Equal(t, []string{"start a", "stop a"}, log)
	})
}
