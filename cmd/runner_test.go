package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ferrovia/muselib/internal/shared"
	tu "github.com/ferrovia/muselib/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for _, c := range commands {
			names[c.Name] = true
		}

		for _, want := range []string{"serve", "setup", "export", "library"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]int{"n": 1}, false); err != nil {
			t.Fatalf("writeJSON failed: %v", err)
		}

		if strings.TrimSpace(output.String()) != `{"n":1}` {
			t.Errorf("unexpected output: %q", output.String())
		}
	})

	t.Run("writeJSON with failing writer", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := runner.writeJSON(map[string]int{"n": 1}, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("loadConfig falls back when file missing", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		config := runner.loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if config != runner.config {
			t.Error("expected fallback to runner config")
		}
	})
}

func testConfig(t *testing.T) *shared.Config {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "muselib.db")
	return config
}

func TestSetupDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output})

	cmd := &cli.Command{
		Name: "muselib",
		Commands: []*cli.Command{{
			Name: "database",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "config", Value: "config.toml"},
			},
			Action: runner.SetupDatabase,
		}},
	}

	if err := cmd.Run(context.Background(), []string{"muselib", "database"}); err != nil {
		t.Fatalf("setup database failed: %v", err)
	}

	tu.AssertFileExists(t, filepath.Join(dir, "config.toml"))
	tu.AssertFileExists(t, filepath.Join(dir, "muselib.db"))
}

func TestExportPlaylistCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	config := testConfig(t)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	playlist := tu.MustCreatePlaylist(t, db, "Road Trip", 0)
	song := tu.MustCreateSong(t, db, "Golden Hour", "Wayfarer")
	if _, err := db.Exec("INSERT INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)", playlist.ID, song.ID); err != nil {
		t.Fatalf("failed to seed playlist: %v", err)
	}
	db.Close()

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Config: config, Output: output})

	cmd := &cli.Command{
		Name: "muselib",
		Commands: []*cli.Command{{
			Name: "export",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "config", Value: "config.toml"},
				&cli.IntFlag{Name: "playlist", Required: true},
				&cli.StringFlag{Name: "format", Value: "csv"},
				&cli.StringFlag{Name: "output"},
			},
			Action: runner.ExportPlaylist,
		}},
	}

	outPath := filepath.Join(dir, "export.csv")
	args := []string{"muselib", "export", "--playlist", "1", "--output", outPath}
	if err := cmd.Run(context.Background(), args); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	tu.AssertFileExists(t, outPath)
	if content := tu.MustReadFile(t, outPath); !strings.Contains(content, "Golden Hour") {
		t.Errorf("export missing song: %s", content)
	}
	if !strings.Contains(output.String(), "Road Trip") {
		t.Errorf("expected confirmation message, got %q", output.String())
	}
}

func TestLibraryCommands(t *testing.T) {
	config := testConfig(t)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	user := tu.MustCreateUser(t, db, "alice", "alice@example.com")
	tu.MustCreatePlaylist(t, db, "Favorites", user.ID)
	tu.MustCreateSong(t, db, "Golden Hour", "Wayfarer")
	db.Close()

	newCommand := func(runner *Runner) *cli.Command {
		return &cli.Command{
			Name:     "muselib",
			Commands: []*cli.Command{libraryCommand(runner)},
		}
	}

	t.Run("users", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output})

		args := []string{"muselib", "library", "users", "--config", "does-not-exist.toml"}
		if err := newCommand(runner).Run(context.Background(), args); err != nil {
			t.Fatalf("library users failed: %v", err)
		}

		if !strings.Contains(output.String(), "alice@example.com") {
			t.Errorf("expected user listing, got %q", output.String())
		}
	})

	t.Run("users with failing writer", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: config, Output: &tu.FWriter{}})

		args := []string{"muselib", "library", "users", "--config", "does-not-exist.toml"}
		if err := newCommand(runner).Run(context.Background(), args); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("playlists filtered by user", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output})

		args := []string{"muselib", "library", "playlists", "--config", "does-not-exist.toml", "--user", "1"}
		if err := newCommand(runner).Run(context.Background(), args); err != nil {
			t.Fatalf("library playlists failed: %v", err)
		}

		if !strings.Contains(output.String(), "Favorites") {
			t.Errorf("expected playlist listing, got %q", output.String())
		}
	})

	t.Run("songs as json", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output})

		args := []string{"muselib", "library", "songs", "--config", "does-not-exist.toml", "--json"}
		if err := newCommand(runner).Run(context.Background(), args); err != nil {
			t.Fatalf("library songs failed: %v", err)
		}

		if !strings.Contains(output.String(), `"title"`) {
			t.Errorf("expected JSON song listing, got %q", output.String())
		}
	})

	t.Run("songs filtered by title", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output})

		args := []string{"muselib", "library", "songs", "--config", "does-not-exist.toml", "--title", "golden"}
		if err := newCommand(runner).Run(context.Background(), args); err != nil {
			t.Fatalf("library songs failed: %v", err)
		}

		if !strings.Contains(output.String(), "Golden Hour") {
			t.Errorf("expected filtered song listing, got %q", output.String())
		}
	})
}
