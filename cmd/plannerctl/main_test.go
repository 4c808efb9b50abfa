package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"daily-planner-go/internal/apiclient/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type harness struct {
	t        *testing.T
	upstream *apitest.Server
	dir      string
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	upstream := apitest.New()
	t.Cleanup(upstream.Close)
	upstream.AddUser("alice", "13800000000", "secret")

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("API_BASE_URL", upstream.BaseURL())
	t.Setenv("ADMIN_API_BASE_URL", upstream.AdminBaseURL())
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "planner.db"))
	t.Setenv("TOKEN_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")

	return &harness{t: t, upstream: upstream, dir: dir, stdout: new(bytes.Buffer), stderr: new(bytes.Buffer)}
}

func (h *harness) run(stdin string, args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	return run(context.Background(), args, bytes.NewBufferString(stdin), h.stdout, h.stderr)
}

func (h *harness) login() {
	h.t.Helper()
	require.NoError(h.t, h.run("", "login", "-account", "alice", "-password", "secret"))
}

func TestRun_MissingCommand(t *testing.T) {
	h := newHarness(t)

	err := h.run("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing command")
	assert.Contains(t, h.stdout.String(), "Usage:")
	assert.Contains(t, h.stdout.String(), "plan-add")
}

func TestRun_UnknownCommand(t *testing.T) {
	h := newHarness(t)

	err := h.run("", "fly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "fly"`)
}

func TestRun_LoginPersistsAcrossRuns(t *testing.T) {
	h := newHarness(t)

	h.login()
	assert.Contains(t, h.stdout.String(), "Logged in as alice")

	require.NoError(t, h.run("", "whoami"))
	assert.Contains(t, h.stdout.String(), "alice (id 1, phone 13800000000)")
	assert.Contains(t, h.stdout.String(), "Token expires")

	require.NoError(t, h.run("", "logout"))
	err := h.run("", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestRun_InteractivePassword(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("secret\n", "login", "13800000000"))
	assert.Contains(t, h.stdout.String(), "Password: ")
	assert.Contains(t, h.stdout.String(), "Logged in as alice")
}

func TestRun_WrongPassword(t *testing.T) {
	h := newHarness(t)

	err := h.run("", "login", "-account", "alice", "-password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid account or password")
}

func TestRun_SealedTokenAtRest(t *testing.T) {
	h := newHarness(t)
	t.Setenv("TOKEN_SECRET", "correct horse battery staple")

	h.login()
	require.NoError(t, h.run("", "whoami"))

	t.Setenv("TOKEN_SECRET", "another secret")
	err := h.run("", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestRun_RequiresLogin(t *testing.T) {
	h := newHarness(t)

	err := h.run("", "plans")
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Zero(t, h.upstream.Requests("GET /api/plans"))
}

func TestRun_Plans(t *testing.T) {
	h := newHarness(t)
	h.login()

	require.NoError(t, h.run("", "plan-add", "Buy", "milk"))
	assert.Contains(t, h.stdout.String(), "Added plan #2")

	require.NoError(t, h.run("", "plans"))
	assert.Contains(t, h.stdout.String(), "[ ] #2 Buy milk")
	assert.Contains(t, h.stdout.String(), "0/1 done")

	require.NoError(t, h.run("", "plan-done", "2"))
	assert.Contains(t, h.stdout.String(), "Plan #2 is now completed")

	require.NoError(t, h.run("", "plans"))
	assert.Contains(t, h.stdout.String(), "[x] #2 Buy milk")
	assert.Contains(t, h.stdout.String(), "1/1 done (100%)")

	require.NoError(t, h.run("", "plan-rm", "2"))
	require.NoError(t, h.run("", "plans"))
	assert.Contains(t, h.stdout.String(), "0/0 done (0%)")

	err := h.run("", "plan-add", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enter the plan content")
}

func TestRun_ExpensesAndExport(t *testing.T) {
	h := newHarness(t)
	h.login()

	require.NoError(t, h.run("", "expense-add", "-category", "餐饮", "-note", "lunch", "12.5"))
	assert.Contains(t, h.stdout.String(), "Recorded 12.50 餐饮")
	require.NoError(t, h.run("", "expense-add", "-category", "交通", "30"))

	err := h.run("", "expense-add", "abc")
	require.Error(t, err)

	require.NoError(t, h.run("", "expenses"))
	assert.Contains(t, h.stdout.String(), "lunch")
	assert.Contains(t, h.stdout.String(), "Total 42.50 of 42.50")

	require.NoError(t, h.run("", "expenses", "-year", "1999"))
	assert.Contains(t, h.stdout.String(), "Total 0.00 of 42.50")

	out := filepath.Join(h.dir, "out.xlsx")
	require.NoError(t, h.run("", "export", "-o", out))
	assert.Contains(t, h.stdout.String(), "Wrote 2 expenses")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	book, err := excelize.OpenReader(f)
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Expenses")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestRun_WaterIsLocal(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("", "water-add", "茶"))
	assert.Contains(t, h.stdout.String(), "Logged 200 ml 茶, 200 ml today")

	require.NoError(t, h.run("", "water-add", "白开水", "300"))
	require.NoError(t, h.run("", "water"))
	assert.Contains(t, h.stdout.String(), "500/2000 ml (25%)")

	err := h.run("", "water-add", "茶", "-5")
	require.Error(t, err)
}
