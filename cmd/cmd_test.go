package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/abhisek/regexlab/internal/explain"
	"github.com/abhisek/regexlab/internal/llm"
	"github.com/abhisek/regexlab/internal/store"
)

// resetFlags restores every flag to its default so one Execute does not
// leak into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// isolate points every path and key the CLI reads at test-local values.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("REGEXLAB_DB", filepath.Join(t.TempDir(), "regexlab.db"))
	for _, k := range []string{
		"REGEXLAB_LLM_PROVIDER", "REGEXLAB_MODEL", "REGEXLAB_LOG_LEVEL",
		"ALBERT_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
		"REGEXLAB_ALBERT_API_KEY", "REGEXLAB_OPENAI_API_KEY",
		"REGEXLAB_ANTHROPIC_API_KEY", "REGEXLAB_GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	isolate(t)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// useMock routes every provider the CLI builds to mock, with event
// recording left in place.
func useMock(t *testing.T, mock *llm.MockProvider) {
	t.Helper()
	orig := newProvider
	newProvider = func(_ context.Context, _ llm.Config, repo store.EventRepo) (llm.Provider, error) {
		return llm.WithLogging(mock, "mock", repo), nil
	}
	t.Cleanup(func() { newProvider = orig })
}

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	orig := appFs
	appFs = afero.NewMemMapFs()
	t.Cleanup(func() { appFs = orig })
	return appFs
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "regexlab (devel)\n", out)
}

func TestVersion_Stamped(t *testing.T) {
	old := version
	version = "v0.3.1"
	t.Cleanup(func() { version = old })

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "regexlab v0.3.1\n", out)
}

func TestExplainLocal(t *testing.T) {
	pattern := `^[a-z]+\d{2}$`
	out, err := execute(t, "", "explain", pattern)
	require.NoError(t, err)
	assert.Equal(t, explain.Format(explain.Explain(pattern))+"\n", out)
}

func TestExplainJSON(t *testing.T) {
	out, err := execute(t, "", "explain", "--json", `^\d{5}$`)
	require.NoError(t, err)

	assert.Equal(t, `^\d{5}$`, gjson.Get(out, "pattern").String())
	assert.Greater(t, gjson.Get(out, "sentences.#").Int(), int64(0))
	assert.False(t, gjson.Get(out, "model").Exists(), "local explanations have no model")
}

func TestExplainWithAI(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Five digits, nothing else."))
	useMock(t, mock)

	out, err := execute(t, "", "explain", "--ai", "--prompt", "Be brief.", `^\d{5}$`)
	require.NoError(t, err)
	assert.Equal(t, "Five digits, nothing else.\n", out)
	assert.True(t, strings.HasPrefix(mock.LastPrompt(), "Be brief."))
}

func TestExplainStructuredReportsMismatches(t *testing.T) {
	useMock(t, llm.NewMockProvider(llm.MockText(
		`{"sentences":["Five digits."],"valid_examples":["12345","1234"],"invalid_examples":["abc"]}`)))

	out, err := execute(t, "", "explain", "--structured", `^\d{5}$`)
	require.NoError(t, err)
	assert.Contains(t, out, "Five digits.")
	assert.Contains(t, out, `warning: valid example "1234" does not match`)
	assert.NotContains(t, out, `"12345" does not match`)
}

func TestExplainAIUnavailable(t *testing.T) {
	_, err := execute(t, "", "--provider", "albert", "explain", "--ai", "x+")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI features unavailable")
}

func TestGenerate(t *testing.T) {
	useMock(t, llm.NewMockProvider(llm.MockText("Use `^\\d{5}$` for that.")))

	out, err := execute(t, "", "generate", "a", "French", "postcode")
	require.NoError(t, err)
	assert.Equal(t, "^\\d{5}$\n", out)
}

func TestGenerateRecordsEvent(t *testing.T) {
	useMock(t, llm.NewMockProvider(llm.MockText("`[A-Z]+`")))

	_, err := execute(t, "", "generate", "capitals")
	require.NoError(t, err)

	dbPath := mustEnv(t, "REGEXLAB_DB")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, llm.PurposeGenerate, events[0].Purpose)
	assert.NotEmpty(t, events[0].SessionID, "each run tags its calls with a session id")
}

func mustEnv(t *testing.T, key string) string {
	t.Helper()
	v := os.Getenv(key)
	require.NotEmpty(t, v, "%s not set", key)
	return v
}

func TestTestCommand(t *testing.T) {
	out, err := execute(t, "", "test", `^\d{2}-\d{2}-\d{4}$`, "01-01-2023", "1-1-2023")
	require.NoError(t, err)
	assert.Contains(t, out, `✓   1  01-01-2023  "01-01-2023"`)
	assert.Contains(t, out, "✗   2  1-1-2023")
	assert.Contains(t, out, "1/2 lines matched")
}

func TestTestFromFile(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "lines.txt", []byte("ABC\r\n\r\nxyz\n"), 0o644))

	out, err := execute(t, "", "test", "-i", "--file", "lines.txt", "^abc$")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2 lines matched")
}

func TestTestFromStdin(t *testing.T) {
	out, err := execute(t, "a1\nb\n", "test", "--json", "--file", "-", `(?P<letter>[a-z])(\d)?`)
	require.NoError(t, err)

	assert.Equal(t, int64(2), gjson.Get(out, "tested").Int())
	assert.Equal(t, int64(2), gjson.Get(out, "matched").Int())
	assert.Equal(t, "a", gjson.Get(out, "results.0.named_groups.letter").String())
	assert.Equal(t, "1", gjson.Get(out, "results.0.groups.1").String())
	assert.Equal(t, gjson.Null, gjson.Get(out, "results.1.groups.1").Type)
}

func TestTestErrors(t *testing.T) {
	_, err := execute(t, "", "test", "(unclosed", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")

	_, err = execute(t, "", "test", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no test lines")
}

func TestExamples(t *testing.T) {
	out, err := execute(t, "", "examples")
	require.NoError(t, err)
	for _, e := range explain.Library() {
		assert.Contains(t, out, e.Name)
		assert.Contains(t, out, e.Pattern)
	}

	out, err = execute(t, "", "examples", "--json", "ine code")
	require.NoError(t, err)
	assert.Equal(t, "INE code", gjson.Get(out, "0.name").String())
	assert.Equal(t, int64(1), gjson.Get(out, "#").Int())

	_, err = execute(t, "", "examples", "zip code")
	require.Error(t, err)
}

func TestTree(t *testing.T) {
	out, err := execute(t, "", "tree", `(?P<year>\d{4})-(\d{2})`)
	require.NoError(t, err)
	assert.Contains(t, out, "captures: 2")
	assert.Contains(t, out, "year")
	assert.Contains(t, out, "estimate: It contains 2 capture group(s)")

	_, err = execute(t, "", "tree", "(")
	require.Error(t, err)
}

func TestExportToStdout(t *testing.T) {
	out, err := execute(t, "", "export", "--name", "postcode", `^\d{5}$`)
	require.NoError(t, err)
	assert.Contains(t, out, "package patterns")
	assert.Contains(t, out, "PostcodeRegexp")
	assert.Contains(t, out, "func IsPostcode(")
}

func TestExportLibraryEntry(t *testing.T) {
	fs := useMemFs(t)

	out, err := execute(t, "", "export", "--library", "French phone number", "--package", "phone", "--out", "/gen")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("/gen", "frenchphonenumber.go"))

	src, err := afero.ReadFile(fs, filepath.Join("/gen", "frenchphonenumber.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package phone")

	test, err := afero.ReadFile(fs, filepath.Join("/gen", "frenchphonenumber_test.go"))
	require.NoError(t, err)
	assert.Contains(t, string(test), "01 23 45 67 89")

	_, err = execute(t, "", "export")
	require.Error(t, err)
}

func TestGuide(t *testing.T) {
	out, err := execute(t, "", "guide")
	require.NoError(t, err)
	for _, s := range explain.Guide() {
		assert.Contains(t, out, s.Title)
	}
}

func TestLLMListAndStats(t *testing.T) {
	useMock(t, llm.NewMockProvider(
		llm.MockResponse{Content: "ok", Usage: llm.Usage{InputTokens: 10, OutputTokens: 5}},
	))

	// Later runs re-isolate, so point them back at the first run's store.
	_, err := execute(t, "", "explain", "--ai", "a+")
	require.NoError(t, err)
	dbPath := mustEnv(t, "REGEXLAB_DB")

	out, err := execute(t, "", "--db", dbPath, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "explain")
	assert.Contains(t, out, "mock")

	out, err = execute(t, "", "--db", dbPath, "llm", "list", "--purpose", "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM requests recorded yet.")

	out, err = execute(t, "", "--db", dbPath, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "TOTAL")

	out, err = execute(t, "", "--db", dbPath, "llm", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Purpose:   explain")
	assert.Contains(t, out, "a+")

	_, err = execute(t, "", "--db", dbPath, "llm", "view", "99")
	require.Error(t, err)
}

func TestLLMConfigDiscovery(t *testing.T) {
	isolate(t)
	resetFlags(rootCmd)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REGEXLAB_MODEL", "gpt-4.1-mini")

	cfg := llmConfig()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4.1-mini", cfg.ModelID())
}
