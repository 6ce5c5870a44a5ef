package templates

import (
	"strings"
	"testing"
)

func TestGetInitFiles(t *testing.T) {
	files, err := GetInitFiles()
	if err != nil {
		t.Fatalf("GetInitFiles() error = %v", err)
	}

	want := []string{
		"init/ember.yaml.tmpl",
		"init/go.mod.tmpl",
		"init/main.go.tmpl",
		"init/scene.yaml.tmpl",
	}
	for _, w := range want {
		found := false
		for _, f := range files {
			if f == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s in init files, got %v", w, files)
		}
	}
}

func TestInitSceneMatchesMain(t *testing.T) {
	// The scaffolded scene.yaml and main.go describe the same starter
	// content; keep the texture names in sync.
	mainSrc, err := ReadFile("init/main.go.tmpl")
	if err != nil {
		t.Fatalf("ReadFile(init/main.go.tmpl) failed: %v", err)
	}
	sceneSrc, err := ReadFile("init/scene.yaml.tmpl")
	if err != nil {
		t.Fatalf("ReadFile(init/scene.yaml.tmpl) failed: %v", err)
	}

	if !strings.Contains(string(mainSrc), "logo.png") {
		t.Error("expected logo.png in init/main.go.tmpl")
	}
	if !strings.Contains(string(sceneSrc), "logo.png") {
		t.Error("expected logo.png in init/scene.yaml.tmpl")
	}
}
