package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestValidateDirectory(t *testing.T) {
	type tc struct {
		name    string
		dir     string
		wantErr bool
	}
	tests := []tc{
		{"simple name", "mygame", false},
		{"relative path", "projects/mygame", false},
		{"dot-slash relative", "./projects/mygame", false},
		{"deep relative", "a/b/c/mygame", false},

		// Dangerous paths (cross-platform)
		{"empty", "", true},
		{"root slash", "/", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
	}

	if runtime.GOOS == "windows" {
		tests = append(tests,
			tc{"drive root", `C:\`, true},
			tc{"bare backslash root", `\`, true},
			tc{"root-level C:\\Users", `C:\Users`, true},
			tc{"nested windows path", `C:\Users\me\projects\mygame`, false},
		)
	} else {
		tests = append(tests,
			tc{"absolute nested", "/home/user/projects/mygame", false},
			tc{"root-level /etc", "/etc", true},
			tc{"root-level /home", "/home", true},
			tc{"root-level /tmp", "/tmp", true},
		)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDirectory(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDirectory(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "mygame", false},
		{"with hyphen", "my-game", false},
		{"with underscore", "my_game", false},
		{"with numbers", "game2", false},
		{"uppercase", "MyGame", false},

		{"empty", "", true},
		{"starts with dot", ".hidden", true},
		{"starts with hyphen", "-bad", true},
		{"starts with number", "1game", true},
		{"has spaces", "my game", true},
		{"has slash", "my/game", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProjectName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestScaffoldProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mygame")

	if err := scaffoldProject(dir, "mygame", "github.com/someone/mygame"); err != nil {
		t.Fatalf("scaffoldProject() error = %v", err)
	}

	for _, name := range []string{"go.mod", "main.go", "ember.yaml", "scene.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	gomod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		t.Fatalf("read go.mod: %v", err)
	}
	if !strings.Contains(string(gomod), "module github.com/someone/mygame") {
		t.Errorf("go.mod missing module path:\n%s", gomod)
	}

	manifest, err := os.ReadFile(filepath.Join(dir, "ember.yaml"))
	if err != nil {
		t.Fatalf("read ember.yaml: %v", err)
	}
	if !strings.Contains(string(manifest), "name: mygame") {
		t.Errorf("ember.yaml missing app name:\n%s", manifest)
	}
}

func TestScaffoldProjectExistingDir(t *testing.T) {
	dir := t.TempDir()
	if err := scaffoldProject(dir, "mygame", "mygame"); err == nil {
		t.Fatal("scaffoldProject() into an existing directory should fail")
	}
}
