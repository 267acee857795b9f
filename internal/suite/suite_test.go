package suite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctr/internal/casetable"
	"ctr/internal/outcome"
	"ctr/internal/service"
	"ctr/internal/store"
)

const prohibitCSV = "用例编号,user_id,if_prohibited,预期输出,实际输出,测试结果,备注,执行时间,执行人\n" +
	"1,1,1,prohibit operation success,,,,,\n" +
	"2,x,1,For input string: \"x,,,,,\n"

func parseTable(t *testing.T, content string) *casetable.Table {
	t.Helper()
	table, err := casetable.Parse(strings.NewReader(content))
	require.NoError(t, err)
	return table
}

func prohibitDefinition(t *testing.T) Definition {
	t.Helper()
	for _, d := range Defaults() {
		if d.Name == "prohibit" {
			return d
		}
	}
	t.Fatal("prohibit suite missing")
	return Definition{}
}

func TestDefaults_Validate(t *testing.T) {
	for _, d := range Defaults() {
		t.Run(d.Name, func(t *testing.T) {
			require.NoError(t, d.Validate())
			_, ok := LookupOperation(d.Operation)
			assert.True(t, ok)
		})
	}
}

func TestDefinition_Validate(t *testing.T) {
	d := prohibitDefinition(t)
	d.Operation = "delete_everything"
	err := d.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation")

	d = prohibitDefinition(t)
	d.File = ""
	assert.Error(t, d.Validate())
}

func TestDefinition_Paths(t *testing.T) {
	d := prohibitDefinition(t)
	assert.Equal(t, filepath.Join("cases", "unit", "order", "prohibit.csv"), d.CasePath("cases"))
	assert.Equal(t, filepath.Join("cases", "unit", "order", "prohibit_result.csv"), d.ResultPath("cases"))

	d.ResultFile = ""
	assert.Equal(t, filepath.Join("cases", "unit", "order", "prohibit_result.csv"), d.ResultPath("cases"))
}

func TestMerge(t *testing.T) {
	base := Defaults()
	override := prohibitDefinition(t)
	override.Operator = "9999999"
	extra := Definition{Name: "ban_again", Operation: "prohibit", File: "x.csv"}

	merged := Merge(base, []Definition{override, extra})
	require.Len(t, merged, len(base)+1)
	assert.Equal(t, "9999999", merged[1].Operator)
	assert.Equal(t, "ban_again", merged[3].Name)
	assert.Equal(t, "2154064", base[1].Operator, "base must not be modified")
}

func TestMerge_PartialOverride(t *testing.T) {
	merged := Merge(Defaults(), []Definition{{Name: "add_appeal", Fixture: "fixtures/club.sql"}})

	require.Len(t, merged, 3)
	assert.Equal(t, "fixtures/club.sql", merged[2].Fixture)
	assert.Equal(t, "unit/order/add_appeal.csv", merged[2].File)
	assert.Equal(t, 7, merged[2].Layout.Expected)
	require.NoError(t, merged[2].Validate())
}

func TestLayout_Validate(t *testing.T) {
	table := parseTable(t, prohibitCSV)
	layout := prohibitDefinition(t).Layout
	require.NoError(t, layout.Validate(table))

	layout.Operator = 20
	err := layout.Validate(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, casetable.ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "operator")
}

func TestLayout_Check(t *testing.T) {
	valid := prohibitDefinition(t).Layout
	require.NoError(t, valid.Check())

	tests := []struct {
		name    string
		mutate  func(*Layout)
		wantErr string
	}{
		{
			name:    "no inputs",
			mutate:  func(l *Layout) { l.Inputs = nil },
			wantErr: "no input columns",
		},
		{
			name: "only inputs given",
			mutate: func(l *Layout) {
				*l = Layout{Inputs: map[string]int{"user_id": 1, "if_prohibited": 2}, Expected: 3}
			},
			wantErr: "layout column actual: must be 1 or greater, got 0",
		},
		{
			name:    "outcome over case id",
			mutate:  func(l *Layout) { l.Operator = 0 },
			wantErr: "layout column operator",
		},
		{
			name:    "outcome over input",
			mutate:  func(l *Layout) { l.Actual = 2 },
			wantErr: "column 2 is already used by input if_prohibited",
		},
		{
			name:    "two outcomes share a column",
			mutate:  func(l *Layout) { l.Time = l.Result },
			wantErr: "column 5 is already used by result",
		},
		{
			name:    "input over case id",
			mutate:  func(l *Layout) { l.Inputs = map[string]int{"user_id": 0, "if_prohibited": 2} },
			wantErr: "layout column input user_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := prohibitDefinition(t).Layout
			layout.Inputs = map[string]int{"user_id": 1, "if_prohibited": 2}
			tt.mutate(&layout)

			err := layout.Check()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			table := parseTable(t, prohibitCSV)
			assert.Error(t, layout.Validate(table))

			def := prohibitDefinition(t)
			def.Layout = layout
			assert.Error(t, def.Validate())
		})
	}
}

func TestLayout_InputNames(t *testing.T) {
	layout := Defaults()[2].Layout
	assert.Equal(t,
		[]string{"user_id", "cmt_id", "act_id", "complainant_id", "app_content", "app_time"},
		layout.InputNames())
}

func TestTranslate(t *testing.T) {
	table := parseTable(t, prohibitCSV)
	cases, cursor, err := Translate(table, prohibitDefinition(t).Layout)
	require.NoError(t, err)

	assert.Equal(t, Cursor{Total: 3, Index: 1}, cursor)
	require.Len(t, cases, 2)
	assert.Equal(t, 1, cases[0].Row)
	assert.Equal(t, "prohibit operation success", cases[0].Expected)
	assert.Equal(t, "x", cases[1].Field("user_id"))
}

func TestTranslate_HeaderOnly(t *testing.T) {
	table := parseTable(t, "用例编号,user_id,if_prohibited,预期输出,实际输出,测试结果,备注,执行时间,执行人\n")
	cases, cursor, err := Translate(table, prohibitDefinition(t).Layout)
	require.NoError(t, err)
	assert.Empty(t, cases)
	assert.Equal(t, 1, cursor.Total)
}

func TestCursor_Last(t *testing.T) {
	assert.False(t, Cursor{Total: 3, Index: 1}.Last())
	assert.True(t, Cursor{Total: 3, Index: 2}.Last())
}

func TestCase_Accessors(t *testing.T) {
	c := NewCase(1, "", map[string]string{
		"id":    "42",
		"empty": "",
		"bad":   "4x",
		"at":    "2024-03-01 08:30:00",
		"late":  "2024/03/01",
	})

	v, err := c.Int("id")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = c.Int("bad")
	assert.ErrorIs(t, err, outcome.ErrCoercion)
	assert.Equal(t, `For input string: "4x"`, err.Error())

	opt, err := c.OptionalInt("empty")
	require.NoError(t, err)
	assert.Nil(t, opt)

	opt, err = c.OptionalInt("id")
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, 42, *opt)

	at, err := c.Time("at")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 30, 0, 0, time.Local), at)

	_, err = c.Time("late")
	assert.ErrorIs(t, err, outcome.ErrCoercion)
	assert.Equal(t, "Text '2024/03/01' could not be parsed with pattern yyyy-MM-dd HH:mm:ss", err.Error())
}

func TestRecorder(t *testing.T) {
	table := parseTable(t, prohibitCSV)
	layout := prohibitDefinition(t).Layout
	rec := NewRecorder(table, layout)

	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	require.NoError(t, rec.Record(1, "prohibit operation success", at, "2154064"))
	require.NoError(t, rec.MarkResult(1, true))
	require.NoError(t, rec.MarkResult(2, false))

	row, err := table.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1", "1", "prohibit operation success", "prohibit operation success",
		PassLabel, "", "2024-05-06 07:08:09", "2154064"}, row)

	cell, err := table.Cell(2, layout.Result)
	require.NoError(t, err)
	assert.Equal(t, FailLabel, cell)

	assert.ErrorIs(t, rec.MarkResult(3, true), casetable.ErrIndexOutOfRange)
}

const seedSQL = `-- users and one activity
INSERT INTO users (user_id, user_name, role, prohibited) VALUES (1, 'member', 0, 0);
INSERT INTO users (user_id, user_name, role, prohibited) VALUES (2, 'admin', 2, 0);
INSERT INTO activities (act_id, act_name, act_time) VALUES (1, 'club fair', '2024-01-01 00:00:00');
`

func openSeeded(t *testing.T) (*sql.DB, *store.Fixture) {
	t.Helper()
	ctx := context.Background()
	db, err := store.Open(ctx, store.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.Migrate(ctx, db, store.SQLite))

	path := filepath.Join(t.TempDir(), "seed.sql")
	require.NoError(t, os.WriteFile(path, []byte(seedSQL), 0o644))
	fixture, err := store.LoadFixture(path)
	require.NoError(t, err)
	return db, fixture
}

func TestServiceInvoker_Prohibit(t *testing.T) {
	db, fixture := openSeeded(t)
	op, _ := LookupOperation("prohibit")
	inv := NewServiceInvoker(db, op, fixture, service.NewImageStore(t.TempDir()))
	ctx := context.Background()

	tests := []struct {
		name   string
		fields map[string]string
		want   string
		kind   outcome.Kind
	}{
		{name: "ban member", fields: map[string]string{"user_id": "1", "if_prohibited": "1"}, want: "prohibit operation success"},
		{name: "member is not banned", fields: map[string]string{"user_id": "1", "if_prohibited": "0"}, want: "user not prohibited", kind: outcome.KindOther},
		{name: "admin", fields: map[string]string{"user_id": "2", "if_prohibited": "1"}, want: "cannot prohibit administrator", kind: outcome.KindOther},
		{name: "bad flag", fields: map[string]string{"user_id": "1", "if_prohibited": "yes"}, want: `For input string: "y`, kind: outcome.KindCoercion},
		{name: "flag parsed first", fields: map[string]string{"user_id": "u", "if_prohibited": "f"}, want: `For input string: "f`, kind: outcome.KindCoercion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inv.Invoke(ctx, NewCase(1, tt.want, tt.fields))
			assert.Equal(t, tt.want, got.Output)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
}

func TestServiceInvoker_RollsBack(t *testing.T) {
	db, fixture := openSeeded(t)
	op, _ := LookupOperation("prohibit")
	inv := NewServiceInvoker(db, op, fixture, nil)
	ctx := context.Background()

	c := NewCase(1, "", map[string]string{"user_id": "1", "if_prohibited": "1"})
	for i := 0; i < 3; i++ {
		got := inv.Invoke(ctx, c)
		assert.Equal(t, "prohibit operation success", got.Output, "attempt %d", i+1)
	}

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	assert.Zero(t, count)
}

func TestServiceInvoker_AddComment(t *testing.T) {
	db, fixture := openSeeded(t)
	op, _ := LookupOperation("add_comment")
	inv := NewServiceInvoker(db, op, fixture, nil)
	ctx := context.Background()

	fields := func(user, act, content, at string) map[string]string {
		return map[string]string{"user_id": user, "act_id": act, "cmt_content": content, "cmt_time": at}
	}

	got := inv.Invoke(ctx, NewCase(1, "", fields("1", "1", "hello", "2024-03-01 10:00:00")))
	assert.Equal(t, "add comment success", got.Output)

	got = inv.Invoke(ctx, NewCase(2, "", fields("1", "1", "", "2024-03-01 10:00:00")))
	assert.Equal(t, "comment content is empty", got.Output)

	got = inv.Invoke(ctx, NewCase(3, "", fields("1", "99", "hello", "2024-03-01 10:00:00")))
	assert.Equal(t, outcome.KindConstraint, got.Kind)

	got = inv.Invoke(ctx, NewCase(4, "", fields("a", "b", "hello", "yesterday")))
	assert.Equal(t, outcome.KindCoercion, got.Kind)
	assert.Equal(t, "Text 'yesterday' coul", got.Output)
}

func TestServiceInvoker_AddAppeal(t *testing.T) {
	db, fixture := openSeeded(t)
	op, _ := LookupOperation("add_appeal")
	inv := NewServiceInvoker(db, op, fixture, service.NewImageStore(t.TempDir()))
	ctx := context.Background()

	fields := map[string]string{
		"user_id": "1", "cmt_id": "", "act_id": "", "complainant_id": "2",
		"app_content": "spam", "app_time": "2024-03-01 10:00:00",
	}
	got := inv.Invoke(ctx, NewCase(1, "", fields))
	assert.Equal(t, "add appeal success", got.Output)

	fields["complainant_id"] = "1"
	got = inv.Invoke(ctx, NewCase(2, "", fields))
	assert.Equal(t, "cannot complain oneself", got.Output)
}

func TestInvokerFunc(t *testing.T) {
	var inv Invoker = InvokerFunc(func(_ context.Context, c Case) outcome.Outcome {
		return outcome.New("ok", nil)
	})
	assert.Equal(t, "ok", inv.Invoke(context.Background(), Case{}).Output)
}
