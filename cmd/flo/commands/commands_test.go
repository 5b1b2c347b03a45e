package commands_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/flo/cmd/flo/commands"
	"go.trai.ch/flo/internal/adapters/config"
	"go.trai.ch/flo/internal/adapters/fs"
	"go.trai.ch/flo/internal/adapters/logger"
	"go.trai.ch/flo/internal/adapters/shell"
	"go.trai.ch/flo/internal/adapters/state"
	"go.trai.ch/flo/internal/adapters/telemetry"
	"go.trai.ch/flo/internal/app"
	"go.trai.ch/flo/internal/core/domain"
	"go.trai.ch/flo/internal/engine/scheduler"
	"go.trai.ch/flo/internal/engine/stale"
)

func newCLI(t *testing.T) (*commands.CLI, *bytes.Buffer) {
	t.Helper()

	store, err := state.NewStore(domain.DefaultStatePath())
	require.NoError(t, err)

	fingerprinter := fs.NewFingerprinter()
	loader := config.NewLoader()
	a := app.New(
		loader,
		stale.NewDetector(fingerprinter, store),
		scheduler.NewScheduler(shell.NewExecutor(), store, fingerprinter, telemetry.NewNoOp()),
		state.NewLock(domain.DefaultLockPath()),
		store,
		logger.New(),
	)

	var out bytes.Buffer
	a.WithStdout(&out)

	return commands.New(app.NewComponents(a, logger.New(), loader)), &out
}

func TestRunCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("flo.yaml", []byte(`
tasks:
  - name: greet
    creates: greeting.txt
    command: "echo hi > greeting.txt"
`), 0o600))

	cli, out := newCLI(t)
	cli.SetArgs([]string{"run"})
	require.NoError(t, cli.Execute(context.Background()))

	data, err := os.ReadFile("greeting.txt")
	require.NoError(t, err)
	require.Equal(t, "hi\n", string(data))
	require.Contains(t, out.String(), "-> greet")
}

func TestRunCommand_Failure(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("flo.yaml", []byte(`
tasks:
  - name: doomed
    creates: never.txt
    command: "exit 1"
`), 0o600))

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"run"})

	err := cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrRunFailed)
}

func TestRunCommand_ConfigFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("alt.yaml", []byte(`
tasks:
  - name: alt
    creates: alt.txt
    command: "echo alt > alt.txt"
`), 0o600))

	cli, out := newCLI(t)
	cli.SetArgs([]string{"run", "--config", "alt.yaml"})
	require.NoError(t, cli.Execute(context.Background()))
	require.Contains(t, out.String(), "-> alt")
}

func TestStatusCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("flo.yaml", []byte(`
tasks:
  - name: greet
    creates: greeting.txt
    command: "echo hi > greeting.txt"
`), 0o600))

	cli, out := newCLI(t)
	cli.SetArgs([]string{"status"})
	require.NoError(t, cli.Execute(context.Background()))
	require.Contains(t, out.String(), "stale: greet")

	_, err := os.Stat("greeting.txt")
	require.True(t, os.IsNotExist(err), "status must not execute tasks")
}

func TestCleanCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("flo.yaml", []byte(`
tasks:
  - name: greet
    creates: greeting.txt
    command: "echo hi > greeting.txt"
`), 0o600))

	cli, _ := newCLI(t)
	cli.SetArgs([]string{"run"})
	require.NoError(t, cli.Execute(context.Background()))

	cli.SetArgs([]string{"clean"})
	require.NoError(t, cli.Execute(context.Background()))

	_, err := os.Stat("greeting.txt")
	require.True(t, os.IsNotExist(err))
}

func TestVersionCommand(t *testing.T) {
	cli, _ := newCLI(t)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestUnknownCommand(t *testing.T) {
	cli, _ := newCLI(t)
	cli.SetArgs([]string{"bogus"})
	require.Error(t, cli.Execute(context.Background()))
}
