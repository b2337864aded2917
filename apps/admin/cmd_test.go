package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	dummydoc "github.com/stepm01/cruzHacks/storage/document/dummy"
)

func setup() (*commandLine, *dummydoc.Store, *bytes.Buffer) {
	repo := dummydoc.NewStore()
	out := new(bytes.Buffer)
	return &commandLine{db: new(sqlx.DB), repo: repo, out: out}, repo, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, _ := setup()

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_token(t *testing.T) {
	cli, _, out := setup()

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no uid", args: []string{"token"}, wantErr: errHelp},
		{name: "uid only", args: []string{"token", "-uid", "uid-1"}},
		{name: "all claims", args: []string{"token", "-uid", "uid-1", "-name", "Sam Student", "-email", "sam@test.edu"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			tok := strings.TrimSpace(out.String())
			if tok == "" {
				t.Fatal("cli.run() printed no token")
			}
			if parts := strings.Split(tok, "."); len(parts) != 3 {
				t.Errorf("cli.run() printed %q; want a JWT with 3 segments", tok)
			}
		})
	}
}

func Test_commandLine_loadSample(t *testing.T) {
	cli, repo, out := setup()

	if err := cli.run([]string{"admin", "loadsample"}); err != errHelp {
		t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
	}

	if err := cli.run([]string{"admin", "loadsample", "-uid", "uid-1"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	doc, err := repo.GetStudent(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("GetStudent() failed: %v", err)
	}
	if len(doc.Transcript) != 6 {
		t.Errorf("len(doc.Transcript) = %d, want 6", len(doc.Transcript))
	}
	for _, c := range doc.Transcript {
		if c.ID == "" {
			t.Error("sample course has no ID")
		}
	}
	if !strings.Contains(out.String(), "loaded 6 sample courses") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
