package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/plan"
	"github.com/arthur-debert/sedit/pkg/testutil"
)

func TestParse(t *testing.T) {
	doc := `
steps:
  - file: config.txt
    mode: substitute
    expression: "s/old/new/g"
  - glob: "**/*.csv"
    mode: columns
    separator: ","
    expression: "sum $2"
    backup: false
  - file: notes.txt
    mode: lines
    action: delete
    start: 2
    end: 4
  - file: app.txt
    mode: literal
    find: foo
    replace: bar
    all: true
    strategy: timestamped
  - file: data.txt
    mode: script
    source: |
      function transform(content)
          return content
      end
`
	p, err := plan.Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, p.Steps, 5)

	assert.Equal(t, "config.txt", p.Steps[0].File)
	assert.Equal(t, "s/old/new/g", p.Steps[0].Expression)
	assert.Nil(t, p.Steps[0].Backup)

	assert.Equal(t, "**/*.csv", p.Steps[1].Glob)
	assert.Equal(t, ",", p.Steps[1].Separator)
	require.NotNil(t, p.Steps[1].Backup)
	assert.False(t, *p.Steps[1].Backup)

	assert.Equal(t, "delete", p.Steps[2].Action)
	assert.Equal(t, 2, p.Steps[2].Start)
	assert.Equal(t, 4, p.Steps[2].End)

	assert.True(t, p.Steps[3].All)
	assert.Equal(t, "timestamped", p.Steps[3].Strategy)

	assert.Contains(t, p.Steps[4].Source, "function transform")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty document",
			doc:  "",
			want: "empty",
		},
		{
			name: "no steps",
			doc:  "steps: []\n",
			want: "no steps",
		},
		{
			name: "unknown field",
			doc: `
steps:
  - file: a.txt
    mode: substitute
    experssion: "s/a/b/"
`,
			want: "experssion",
		},
		{
			name: "file and glob together",
			doc: `
steps:
  - file: a.txt
    glob: "*.txt"
    mode: substitute
    expression: "s/a/b/"
`,
			want: "both",
		},
		{
			name: "neither file nor glob",
			doc: `
steps:
  - mode: substitute
    expression: "s/a/b/"
`,
			want: "file or a glob",
		},
		{
			name: "missing mode",
			doc: `
steps:
  - file: a.txt
`,
			want: "mode",
		},
		{
			name: "unknown mode",
			doc: `
steps:
  - file: a.txt
    mode: frobnicate
`,
			want: "frobnicate",
		},
		{
			name: "unknown strategy",
			doc: `
steps:
  - file: a.txt
    mode: substitute
    expression: "s/a/b/"
    strategy: hourly
`,
			want: "hourly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := plan.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPlanParse), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := testutil.NewMemoryFS()
	doc := `
steps:
  - file: a.txt
    mode: literal
    find: x
    replace: y
`
	require.NoError(t, fs.WriteFile("/plans/edit.yaml", []byte(doc), 0644))

	p, err := plan.Load(fs, "/plans/edit.yaml")
	require.NoError(t, err)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, "a.txt", p.Steps[0].File)
}

func TestLoad_MissingFile(t *testing.T) {
	fs := testutil.NewMemoryFS()

	_, err := plan.Load(fs, "/plans/missing.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}
