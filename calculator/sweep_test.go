package calculator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo/body"
	"thermo/model"
)

func warmOffice(e Engine) error {
	if err := e.SetTa(26); err != nil {
		return err
	}
	if err := e.SetTr(26); err != nil {
		return err
	}
	if err := e.SetPosture(model.Sitting); err != nil {
		return err
	}
	return e.Simulate(10, 60)
}

func TestSweepScenariosAreIndependent(t *testing.T) {
	scenarios := []Scenario{
		{Name: "a", Profile: body.DefaultProfile(), Program: warmOffice},
		{Name: "b", Profile: body.DefaultProfile(), Program: warmOffice},
		{Name: "c", Profile: body.DefaultProfile(), Program: func(e Engine) error {
			if err := e.SetTa(10); err != nil {
				return err
			}
			if err := e.SetTr(10); err != nil {
				return err
			}
			return e.Simulate(10, 60)
		}},
	}

	results := RunSweep(scenarios, 3)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, scenarios[i].Name, r.Name, "submission order preserved")
		require.NoError(t, r.Err)
		require.Len(t, r.Rows, 10)
	}

	// identical programs on identical profiles give identical trajectories
	if diff := cmp.Diff(results[0].Rows, results[1].Rows); diff != "" {
		t.Fatalf("parallel runs of the same scenario diverged:\n%s", diff)
	}
	// the cold scenario must not bleed into the warm ones
	assert.Less(t, results[2].Rows[9].TskMean, results[0].Rows[9].TskMean)
}

func TestSweepReportsScenarioErrors(t *testing.T) {
	bad := body.DefaultProfile()
	bad.Fat = 99

	results := RunSweep([]Scenario{
		{Name: "badprofile", Profile: bad, Program: warmOffice},
		{Name: "badprogram", Profile: body.DefaultProfile(), Program: func(e Engine) error {
			return e.Simulate(0, 60)
		}},
		{Name: "ok", Profile: body.DefaultProfile(), Program: warmOffice},
	}, 2)

	require.Len(t, results, 3)
	assert.ErrorIs(t, results[0].Err, model.ErrConfiguration)
	assert.Empty(t, results[0].Rows)
	assert.ErrorIs(t, results[1].Err, model.ErrInvalidArgument)
	assert.NoError(t, results[2].Err)
	assert.Len(t, results[2].Rows, 10)
}

func TestSweepDefaultWorkerCount(t *testing.T) {
	results := RunSweep([]Scenario{
		{Name: "solo", Profile: body.DefaultProfile(), Program: warmOffice},
	}, 0)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}
