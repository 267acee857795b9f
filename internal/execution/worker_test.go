package execution

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ctr/internal/casetable"
	"ctr/internal/config"
	"ctr/internal/domain"
	"ctr/internal/suite"
)

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	defs := []suite.Definition{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	tests := []struct {
		name    string
		workers int
		want    [][]string
	}{
		{name: "one worker", workers: 1, want: [][]string{{"a", "b", "c"}}},
		{name: "two workers", workers: 2, want: [][]string{{"a", "c"}, {"b"}}},
		{name: "more workers than suites", workers: 8, want: [][]string{{"a"}, {"b"}, {"c"}}},
		{name: "zero workers", workers: 0, want: [][]string{{"a", "b", "c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRoundRobinScheduler().Schedule(defs, tt.workers)
			names := make([][]string, len(got))
			for i, assigned := range got {
				names[i] = []string{}
				for _, d := range assigned {
					names[i] = append(names[i], d.Name)
				}
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

type fakeRunner struct {
	mu      sync.Mutex
	states  map[string]domain.RunState
	workers map[string]int
}

func (f *fakeRunner) Run(_ context.Context, def suite.Definition, workerID int) domain.SuiteReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.workers == nil {
		f.workers = make(map[string]int)
	}
	f.workers[def.Name] = workerID
	state := f.states[def.Name]
	if state == "" {
		state = domain.StateCompleted
	}
	return domain.SuiteReport{Suite: def.Name, WorkerID: workerID, State: state}
}

type fakeProgress struct {
	updates  [][2]int
	finished bool
}

func (p *fakeProgress) Update(passed, failed int) {
	p.updates = append(p.updates, [2]int{passed, failed})
}
func (p *fakeProgress) Finish() { p.finished = true }

func TestWorkerPool_Execute(t *testing.T) {
	defs := []suite.Definition{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	runner := &fakeRunner{states: map[string]domain.RunState{"c": domain.StateAborted}}
	progress := &fakeProgress{}

	pool := NewWorkerPool(2, runner, NewRoundRobinScheduler(), zaptest.NewLogger(t))
	pool.SetProgress(progress)
	reports, _, err := pool.Execute(context.Background(), defs)
	require.NoError(t, err)

	require.Len(t, reports, 4)
	for i, r := range reports {
		assert.Equal(t, defs[i].Name, r.Suite)
	}
	assert.Equal(t, domain.StateAborted, reports[2].State)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 1, "d": 2}, runner.workers)

	assert.True(t, progress.finished)
	require.Len(t, progress.updates, 4)
	assert.Equal(t, [2]int{3, 1}, progress.updates[3])
}

func TestWorkerPool_FailFast(t *testing.T) {
	defs := []suite.Definition{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	runner := &fakeRunner{states: map[string]domain.RunState{"a": domain.StateAborted}}

	pool := NewWorkerPool(1, runner, NewRoundRobinScheduler(), nil)
	pool.SetFailFast(true)
	reports, _, err := pool.Execute(context.Background(), defs)
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, "a", reports[0].Suite)
}

func TestWorkerPool_Empty(t *testing.T) {
	pool := NewWorkerPool(2, &fakeRunner{}, NewRoundRobinScheduler(), nil)
	reports, d, err := pool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, reports)
	assert.Zero(t, d)
}

const prohibitTable = "用例编号,user_id,if_prohibited,预期输出,实际输出,测试结果,备注,执行时间,执行人\n" +
	"1,1,1,prohibit operation success,,,,,\n" +
	"2,2,1,cannot prohibit administrator,,,,,\n" +
	"3,abc,1,For input string: \"a,,,,,\n"

const prohibitFixture = `INSERT INTO users (user_id, user_name, role, prohibited) VALUES (1, 'member', 0, 0);
INSERT INTO users (user_id, user_name, role, prohibited) VALUES (2, 'admin', 2, 0);
`

func newRunnerConfig(t *testing.T) (*config.Config, suite.Definition) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.New()
	cfg.ProjectPath = dir
	cfg.Database.SQLiteDir = filepath.Join(dir, "db")

	var def suite.Definition
	for _, d := range cfg.Suites {
		if d.Name == "prohibit" {
			def = d
		}
	}
	def.Fixture = "unit/order/prohibit.sql"

	caseDir := cfg.GetCaseDir()
	require.NoError(t, os.MkdirAll(filepath.Join(caseDir, "unit", "order"), 0o755))
	require.NoError(t, os.WriteFile(cfg.CasePath(def.File), []byte(prohibitTable), 0o644))
	require.NoError(t, os.WriteFile(cfg.CasePath(def.Fixture), []byte(prohibitFixture), 0o644))
	return cfg, def
}

func TestRunner_Run(t *testing.T) {
	cfg, def := newRunnerConfig(t)
	runner := NewRunner(cfg, zaptest.NewLogger(t))

	report := runner.Run(context.Background(), def, 1)
	require.NoError(t, report.Error)
	assert.Equal(t, domain.StateCompleted, report.State)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Passed)

	resultPath := filepath.Join(cfg.GetCaseDir(), "unit", "order", "prohibit_result.csv")
	assert.Equal(t, resultPath, report.ResultFile)

	result, err := casetable.Load(resultPath)
	require.NoError(t, err)
	for i := 1; i < result.Len(); i++ {
		cell, err := result.Cell(i, def.Layout.Result)
		require.NoError(t, err)
		assert.Equal(t, suite.PassLabel, cell, "row %d", i)
		op, err := result.Cell(i, def.Layout.Operator)
		require.NoError(t, err)
		assert.Equal(t, "2154064", op)
	}
}

func TestRunner_Mismatch(t *testing.T) {
	cfg, def := newRunnerConfig(t)
	broken := "用例编号,user_id,if_prohibited,预期输出,实际输出,测试结果,备注,执行时间,执行人\n" +
		"1,2,1,prohibit operation success,,,,,\n"
	require.NoError(t, os.WriteFile(cfg.CasePath(def.File), []byte(broken), 0o644))

	report := NewRunner(cfg, nil).Run(context.Background(), def, 1)
	assert.Equal(t, domain.StateAborted, report.State)
	require.NotNil(t, report.Failure)
	assert.Equal(t, "cannot prohibit administrator", report.Failure.Actual)
	assert.Empty(t, report.ResultFile)

	_, err := os.Stat(def.ResultPath(cfg.GetCaseDir()))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunner_OperatorOverride(t *testing.T) {
	cfg, def := newRunnerConfig(t)
	cfg.Operator = "7"

	report := NewRunner(cfg, nil).Run(context.Background(), def, 2)
	require.Equal(t, domain.StateCompleted, report.State)

	result, err := casetable.Load(report.ResultFile)
	require.NoError(t, err)
	op, err := result.Cell(1, def.Layout.Operator)
	require.NoError(t, err)
	assert.Equal(t, "7", op)
}

func TestRunner_MissingTable(t *testing.T) {
	cfg, def := newRunnerConfig(t)
	require.NoError(t, os.Remove(cfg.CasePath(def.File)))

	report := NewRunner(cfg, nil).Run(context.Background(), def, 1)
	assert.Equal(t, domain.StateErrored, report.State)
	assert.ErrorIs(t, report.Error, casetable.ErrParse)
}
