package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/backend/httpapi"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv(config.EnvAPIURL, "")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Isolate from the user's settings; flags-first invocations stay as given
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	}

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionDoesNotNeedService(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		t.Fatal("factory should not be called for version")
		return nil, nil
	}
	stdout, _, code := run(t, factory, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--color"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -color\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.ColorGreen)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	expected := "Tasks: 1 • Completed: 0 of 1\n   1  [ ] Buy milk  (green)\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
	if svc.Calls("ListTasks") != 1 {
		t.Errorf("expected one fetch, got %d", svc.Calls("ListTasks"))
	}
}

func TestDispatcher_AliasAndFlagsAfterArgs(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, testFactory(svc), "create", "--color", "pink", "Water plants")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok 1\n" {
		t.Errorf("expected 'ok 1', got %q", stdout)
	}
	task, err := svc.GetTask(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if task.Color != service.ColorPink || task.Title != "Water plants" {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestDispatcher_QuietFlag(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := run(t, testFactory(svc), "add", "--quiet", "Buy milk")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout, got %q", stdout)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return nil, errors.New("bad url")
	}
	_, stderr, code := run(t, factory, "list")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: bad url\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("default_color: teal\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr.String(), "invalid color: teal") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_APIFlagOverridesConfig(t *testing.T) {
	var gotURL string
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		gotURL = cfg.APIURL
		return testutil.NewFakeService(), nil
	}
	_, _, code := run(t, factory, "list", "--api", "http://tasks.example:8080/")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if gotURL != "http://tasks.example:8080" {
		t.Errorf("expected normalized URL, got %q", gotURL)
	}
}

func TestDispatcher_DebugLogsRequests(t *testing.T) {
	srv := testutil.NewFakeAPI(t, testutil.NewFakeService())
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return httpapi.New(cfg, httpapi.WithLogger(logger)), nil
	}

	_, stderr, code := run(t, factory, "list", "--debug", "--api", srv.URL)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stderr, "api request") {
		t.Errorf("expected request debug log, got %q", stderr)
	}
}

func TestDispatcher_EndToEndOverHTTP(t *testing.T) {
	svc := testutil.NewFakeService()
	srv := testutil.NewFakeAPI(t, svc)
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return httpapi.New(cfg, httpapi.WithLogger(logger)), nil
	}

	if _, stderr, code := run(t, factory, "add", "--api", srv.URL, "Buy milk"); code != exitcode.Success {
		t.Fatalf("add failed: %d %q", code, stderr)
	}
	if _, stderr, code := run(t, factory, "toggle", "--api", srv.URL, "1"); code != exitcode.Success {
		t.Fatalf("toggle failed: %d %q", code, stderr)
	}

	stdout, stderr, code := run(t, factory, "list", "--api", srv.URL)
	if code != exitcode.Success {
		t.Fatalf("list failed: %d %q", code, stderr)
	}
	expected := "Tasks: 1 • Completed: 1 of 1\n   1  [x] Buy milk  (blue)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	_, stderr, code = run(t, factory, "rm", "--api", srv.URL, "9")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Task not found\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FlagsAfterID(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.ColorRed)

	_, stderr, code := run(t, testFactory(svc), "edit", "5", "--title", "x")
	if code != exitcode.UserError || stderr != "error: Task not found\n" {
		t.Errorf("flags after an unknown id should still parse, got %d %q", code, stderr)
	}

	_, stderr, code = run(t, testFactory(svc), "edit", "1", "--title", "Buy oat milk", "--color", "green")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	task, err := svc.GetTask(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if task.Title != "Buy oat milk" || task.Color != service.ColorGreen {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestDispatcher_FlagsBetweenTitleWords(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc), "add", "Buy", "--color", "pink", "milk")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	task, _ := svc.GetTask(context.Background(), 1)
	if task.Title != "Buy milk" || task.Color != service.ColorPink {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestDispatcher_DoubleDashEndsFlags(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, testFactory(svc), "add", "--", "--not-a-flag", "-x")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	task, _ := svc.GetTask(context.Background(), 1)
	if task.Title != "--not-a-flag -x" {
		t.Errorf("expected literal title, got %q", task.Title)
	}
}

func TestDispatcher_UnknownFlagAfterArgument(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "rm", "1", "--force")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown flag: -force\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}
