package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const questionsHTML = `<html>
<head><title>Newest Questions - Stack Overflow</title></head>
<body>
<header class="s-topbar so-header">
  <a class="-logo" href="/">Stack Overflow</a>
  <a id="nav-questions" class="s-navigation--item is-selected">Questions</a>
  <input name="q" type="text">
</header>
<footer id="footer"><p id="copyright">© 2024 Stack Exchange Inc</p></footer>
</body>
</html>`

const pagesYAML = `
pages:
  - name: QuestionsPage
    fields:
      - name: header
        locator: header.so-header
        schema: Header
        fields:
          - name: logo
            locator: .-logo
          - name: search_field
            locator: "[name=q]"
      - name: footer
        locator: "#footer"
        fields:
          - name: copyright_label
            locator: "#copyright"
`

type workspace struct {
	dir    string
	config string
	page   string
	report string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	w := &workspace{
		dir:    dir,
		config: filepath.Join(dir, "main.yaml"),
		page:   filepath.Join(dir, "questions.html"),
		report: filepath.Join(dir, "out", "report.json"),
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "suites"), 0o755))
	require.NoError(t, os.WriteFile(w.page, []byte(questionsHTML), 0o644))

	cfg := "engine: static\ntimeout-ms: 500\n" +
		"suite-dir: " + filepath.Join(dir, "suites") + "\n" +
		"report-file: " + w.report + "\n" + pagesYAML
	require.NoError(t, os.WriteFile(w.config, []byte(cfg), 0o644))
	return w
}

func (w *workspace) writeSuite(t *testing.T, name, steps string) {
	t.Helper()
	content := "name: " + name + "\nurl: file://" + w.page + "\npage: QuestionsPage\nsteps:\n" + steps
	require.NoError(t, os.WriteFile(filepath.Join(w.dir, "suites", name+".yaml"), []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetReportCaller(false)
		log.SetFormatter(&log.TextFormatter{})
		log.SetLevel(log.InfoLevel)
	})

	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"run", "inspect", "pages", "install"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestPagesCmd(t *testing.T) {
	w := newWorkspace(t)

	out, err := execute(t, "pages", "--config", w.config)
	require.NoError(t, err)
	assert.Equal(t, `QuestionsPage
  header component header.so-header (Header)
    logo element .-logo
    search_field element [name=q]
  footer component #footer (QuestionsPage.footer)
    copyright_label element #copyright
`, out)
}

func TestInspectCmd(t *testing.T) {
	w := newWorkspace(t)

	out, err := execute(t, "inspect", "--config", w.config, "--page", "QuestionsPage", "--html", w.page)
	require.NoError(t, err)
	assert.Equal(t, `QuestionsPage
  header component <header> header.so-header
    logo element <a> .-logo
    search_field element <input> [name=q]
  footer component <footer> #footer
    copyright_label element <p> #copyright
`, out)
}

func TestInspectCmdErrors(t *testing.T) {
	w := newWorkspace(t)

	_, err := execute(t, "inspect", "--config", w.config, "--page", "NoSuchPage", "--html", w.page)
	assert.ErrorContains(t, err, `unknown page "NoSuchPage"`)

	_, err = execute(t, "inspect", "--config", w.config, "--page", "QuestionsPage")
	assert.ErrorContains(t, err, "--html or --url")

	empty := filepath.Join(w.dir, "empty.html")
	require.NoError(t, os.WriteFile(empty, []byte("<html><body></body></html>"), 0o644))
	_, err = execute(t, "inspect", "--config", w.config, "--page", "QuestionsPage", "--html", empty)
	assert.Error(t, err)
}

func TestRunCmdPassing(t *testing.T) {
	w := newWorkspace(t)
	w.writeSuite(t, "header", `  - action: DocumentTitleMatches
    params: ["Newest"]
  - action: ElementVisible
    params: [header.logo]
  - action: ElementTagNameEqual
    params: [header.search_field, input]
`)

	out, err := execute(t, "run", "--config", w.config)
	require.NoError(t, err)
	assert.Equal(t, "1 suites run, 3 assertions passed, 0 failed, report "+w.report+"\n", out)

	data, err := os.ReadFile(w.report)
	require.NoError(t, err)
	doc := gjson.ParseBytes(data)
	assert.Equal(t, "static", doc.Get("engine").String())
	assert.True(t, doc.Get("passed").Bool())
	assert.Equal(t, "header", doc.Get("suites.0.name").String())
	assert.Equal(t, int64(3), doc.Get("suites.0.assertions.#").Int())
}

func TestRunCmdFailing(t *testing.T) {
	w := newWorkspace(t)
	w.writeSuite(t, "footer", `  - action: ElementTagNameEqual
    params: [footer.copyright_label, span]
  - action: ElementVisible
    params: [footer.copyright_label]
`)
	w.writeSuite(t, "header", `  - action: ElementVisible
    params: [header.logo]
`)

	out, err := execute(t, "run", "--config", w.config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "suite footer")
	assert.Equal(t, "2 suites run, 1 assertions passed, 1 failed, report "+w.report+"\n", out)

	data, err := os.ReadFile(w.report)
	require.NoError(t, err)
	doc := gjson.ParseBytes(data)
	assert.False(t, doc.Get("passed").Bool())
	assert.Equal(t, "failed", doc.Get("suites.0.status").String())
	assert.Equal(t, "skipped", doc.Get("suites.0.steps.1.status").String())
	assert.Equal(t, "passed", doc.Get("suites.1.status").String())
}

func TestRunCmdSuiteFilterAndReportFlag(t *testing.T) {
	w := newWorkspace(t)
	w.writeSuite(t, "footer", `  - action: ElementVisible
    params: [footer.copyright_label]
`)
	w.writeSuite(t, "header", `  - action: ElementTagNameEqual
    params: [header.logo, span]
`)
	reportFile := filepath.Join(w.dir, "footer.json")

	out, err := execute(t, "run", "--config", w.config, "--suite", "footer", "--report", reportFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "1 suites run, 1 assertions passed"))
	assert.FileExists(t, reportFile)
	assert.NoFileExists(t, w.report)

	_, err = execute(t, "run", "--config", w.config, "--suite", "nope")
	assert.ErrorContains(t, err, `unknown suite "nope"`)
}

func TestRunCmdMissingConfig(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogFormatter(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.New(),
		Time:    time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Level:   log.WarnLevel,
		Message: "slow page",
	}

	b, err := (&LogFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[2024-05-01 10:30:00] [warning] slow page\n", string(b))
}
