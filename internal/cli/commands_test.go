package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stringvault/internal/analysis"
	"github.com/roach88/stringvault/internal/filter"
	"github.com/roach88/stringvault/internal/record"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// dbArgs points a command at a fresh SQLite database in a temp dir.
func dbArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--db", filepath.Join(t.TempDir(), "vault.db")}
}

func run(t *testing.T, db []string, args ...string) (string, string, error) {
	t.Helper()
	return execute(t, append(args, db...)...)
}

func decodeData[T any](t *testing.T, out string) T {
	t.Helper()
	var resp struct {
		Status string `json:"status"`
		Data   T      `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestAnalyze_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, format := range []string{"json", "text", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, _, err := execute(t, "analyze", "racecar", "--format", format)
			require.NoError(t, err)
			g.Assert(t, "analyze_racecar_"+format, []byte(out))
		})
	}
}

func TestAnalyze_TrimsAndDoesNotStore(t *testing.T) {
	db := dbArgs(t)

	out, _, err := run(t, db, "analyze", "  level  ", "--format", "json")
	require.NoError(t, err)
	got := decodeData[analysisOutput](t, out)
	assert.Equal(t, "level", got.Value)
	assert.Equal(t, 5, got.Properties.Length)
	assert.True(t, got.Properties.IsPalindrome)

	out, _, err = run(t, db, "list", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 0, decodeData[filter.Result](t, out).Count)
}

func TestAddGetDelete(t *testing.T) {
	db := dbArgs(t)

	out, _, err := run(t, db, "add", "  racecar ", "--format", "json")
	require.NoError(t, err)
	added := decodeData[record.StringRecord](t, out)
	assert.Equal(t, "racecar", added.Value)
	assert.Equal(t, analysis.IdentityOf("racecar"), added.ID)
	assert.Equal(t, 4, added.Properties.UniqueCharacters)
	assert.NotEmpty(t, added.CreatedAt)

	out, _, err = run(t, db, "get", "racecar", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, added, decodeData[record.StringRecord](t, out))

	out, _, err = run(t, db, "delete", "racecar")
	require.NoError(t, err)
	assert.Equal(t, "deleted \"racecar\"\n", out)

	out, _, err = run(t, db, "get", "racecar")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E005]: String not found\n", out)
	assert.True(t, record.IsNotFound(err))
}

func TestAdd_TextOutput(t *testing.T) {
	out, _, err := run(t, dbArgs(t), "add", "noon")
	require.NoError(t, err)
	assert.Contains(t, out, "value:             noon\n")
	assert.Contains(t, out, "id:                "+analysis.IdentityOf("noon")+"\n")
	assert.Contains(t, out, `frequencies:       "n"=2 "o"=2`)
	assert.Contains(t, out, "created_at:")
}

func TestAdd_Duplicate(t *testing.T) {
	db := dbArgs(t)

	_, _, err := run(t, db, "add", "level")
	require.NoError(t, err)

	out, _, err := run(t, db, "add", "level ", "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, record.IsDuplicate(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeDuplicate, resp.Error.Code)
	assert.Equal(t, "String already exists", resp.Error.Message)
}

func TestAdd_EmptyValue(t *testing.T) {
	out, _, err := run(t, dbArgs(t), "add", "   ")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, "Error [E002]: Missing or empty value\n", out)
}

func TestDelete_Missing(t *testing.T) {
	out, _, err := run(t, dbArgs(t), "delete", "ghost")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E005")
}

func seed(t *testing.T, db []string, values ...string) {
	t.Helper()
	for _, v := range values {
		_, _, err := run(t, db, "add", v)
		require.NoError(t, err, v)
	}
}

func TestList_Filters(t *testing.T) {
	db := dbArgs(t)
	seed(t, db, "racecar", "hello world", "level", "pizza")

	tests := []struct {
		name  string
		args  []string
		value []string
	}{
		{"all", nil, []string{"racecar", "hello world", "level", "pizza"}},
		{"palindromes", []string{"--palindrome"}, []string{"racecar", "level"}},
		{"non-palindromes", []string{"--palindrome=false"}, []string{"hello world", "pizza"}},
		{"length window", []string{"--min-length", "5", "--max-length", "5"}, []string{"level", "pizza"}},
		{"word count", []string{"--word-count", "2"}, []string{"hello world"}},
		{"contains", []string{"--contains", "z"}, []string{"pizza"}},
		{"zero min length is a filter", []string{"--min-length", "0"}, []string{"racecar", "hello world", "level", "pizza"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", "--format", "json"}, tt.args...)
			out, _, err := run(t, db, args...)
			require.NoError(t, err)

			res := decodeData[filter.Result](t, out)
			assert.Equal(t, len(tt.value), res.Count)
			values := make([]string, 0, len(res.Data))
			for _, r := range res.Data {
				values = append(values, r.Value)
			}
			assert.Equal(t, tt.value, values)
		})
	}
}

func TestList_FiltersAppliedEcho(t *testing.T) {
	out, _, err := run(t, dbArgs(t), "list", "--min-length", "0", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"filters_applied":{"min_length":0}`)
}

func TestList_InvalidFilters(t *testing.T) {
	tests := [][]string{
		{"--min-length", "5", "--max-length", "4"},
		{"--word-count", "-1"},
		{"--contains", "ab"},
	}

	for _, args := range tests {
		out, _, err := run(t, dbArgs(t), append([]string{"list"}, args...)...)
		require.Error(t, err, args)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, out, "Error [E002]")
	}
}

func TestList_Text(t *testing.T) {
	db := dbArgs(t)
	seed(t, db, "racecar", "pizza")

	out, _, err := run(t, db, "list", "--palindrome")
	require.NoError(t, err)
	assert.Equal(t, "1 string (filters: is_palindrome=true)\n  \"racecar\"\n", out)
}

func TestQuery(t *testing.T) {
	db := dbArgs(t)
	seed(t, db, "racecar", "hello world", "zaz", "noon")

	out, _, err := run(t, db, "query", "single word palindromic strings", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			Count            int `json:"count"`
			InterpretedQuery struct {
				Original      string     `json:"original"`
				ParsedFilters filter.Set `json:"parsed_filters"`
			} `json:"interpreted_query"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Data.Count)
	assert.Equal(t, "single word palindromic strings", resp.Data.InterpretedQuery.Original)
	assert.Equal(t, filter.Set{}.WithPalindrome(true).WithWordCount(1), resp.Data.InterpretedQuery.ParsedFilters)

	out, _, err = run(t, db, "query", "strings containing the letter z")
	require.NoError(t, err)
	assert.Equal(t, "query: \"strings containing the letter z\"\nfilters: contains_character=\"z\"\n1 string\n  \"zaz\"\n", out)
}

func TestQuery_Unparsable(t *testing.T) {
	out, _, err := run(t, dbArgs(t), "query", "show me everything")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "Error [E004]: Unable to parse natural language query\n", out)
}

func TestRules(t *testing.T) {
	out, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	rules := decodeData[[]ruleOutput](t, out)
	require.Len(t, rules, 4)
	assert.Equal(t, ruleOutput{Name: "palindromic", Phrase: "palindromic", Effect: "is_palindrome=true"}, rules[0])
	assert.Equal(t, "containing the letter", rules[3].Phrase)

	out, _, err = execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, `longer-than        "longer than"            min_length=N+1`)
}

func TestDrivers(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"badger", []string{"--driver", "badger", "--db", filepath.Join(t.TempDir(), "badger")}},
		{"sqlite without cache", []string{"--driver", "sqlite", "--db", filepath.Join(t.TempDir(), "nocache.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "sqlite without cache" {
				t.Setenv("STRINGVAULT_STORE_CACHE_SIZE", "0")
			}
			seed(t, tt.args, "racecar", "pizza")

			// Reopen: data persists across command invocations.
			out, _, err := run(t, tt.args, "list", "--format", "json")
			require.NoError(t, err)
			assert.Equal(t, 2, decodeData[filter.Result](t, out).Count)

			_, _, err = run(t, tt.args, "add", "pizza")
			assert.True(t, record.IsDuplicate(err))
		})
	}
}

func TestDriver_Memory(t *testing.T) {
	args := []string{"--driver", "memory"}

	_, _, err := run(t, args, "add", "racecar")
	require.NoError(t, err)

	// Each invocation starts with an empty memory store.
	_, _, err = run(t, args, "get", "racecar")
	assert.True(t, record.IsNotFound(err))
}

func TestConfig_Invalid(t *testing.T) {
	out, _, err := execute(t, "list", "--driver", "postgres", "--db", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E007]: invalid configuration")
}

func TestConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stringvault.yaml")
	dbPath := filepath.Join(dir, "from-config.db")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: sqlite\n  path: "+dbPath+"\n"), 0o644))

	_, _, err := execute(t, "add", "level", "--config", path)
	require.NoError(t, err)
	_, err = os.Stat(dbPath)
	require.NoError(t, err, "config file chose the database path")

	// --db wins over the file
	other := filepath.Join(dir, "flag.db")
	_, _, err = execute(t, "get", "level", "--config", path, "--db", other)
	assert.True(t, record.IsNotFound(err))
}

func TestConfig_MissingFile(t *testing.T) {
	out, _, err := execute(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E007")
}

func TestStore_OpenFailure(t *testing.T) {
	// A directory cannot be opened as a SQLite file.
	out, _, err := execute(t, "list", "--db", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E006]: failed to open store")
}

func TestVerbose_LogsToStderr(t *testing.T) {
	out, errOut, err := run(t, dbArgs(t), "add", "noon", "-v")
	require.NoError(t, err)
	assert.Contains(t, errOut, "store ready")
	assert.Contains(t, errOut, "string created")
	assert.NotContains(t, out, "store ready")
}

func TestQuiet_OneShotCommands(t *testing.T) {
	_, errOut, err := run(t, dbArgs(t), "add", "noon")
	require.NoError(t, err)
	assert.Empty(t, errOut, "info logs are suppressed without --verbose")
}
