package provision

import (
	"testing"

	"github.com/msandoval/devinit/internal/config"
)

func TestNewProvisionCmd(t *testing.T) {
	cmd := NewProvisionCmd()

	if cmd.Use != "provision" {
		t.Errorf("Use = %q, want provision", cmd.Use)
	}

	for _, flag := range []string{"force", "dry-run"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("flag %q not defined", flag)
		}
	}
}

func TestLocalRepoTasks(t *testing.T) {
	cfg := &config.Config{}
	cfg.GitHub.Username = "msandoval"
	cfg.GitHub.Token = "tok"
	cfg.GitHub.Repositories.Local = []string{"tooling", "docs"}

	tasks := localRepoTasks(cfg, "/workspace/project")
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}

	if tasks[0].name != "tooling" {
		t.Errorf("name = %q, want tooling", tasks[0].name)
	}
	if tasks[0].url != "https://tok@github.com/msandoval/tooling.git" {
		t.Errorf("url = %q, want authenticated github url", tasks[0].url)
	}
	if tasks[0].path != "/workspace/project/tooling" {
		t.Errorf("path = %q, want repo under the project root", tasks[0].path)
	}
}

func TestLocalRepoTasks_NoUsername(t *testing.T) {
	cfg := &config.Config{}
	cfg.GitHub.Repositories.Local = []string{"tooling"}

	if tasks := localRepoTasks(cfg, "/workspace"); tasks != nil {
		t.Errorf("tasks = %v, want nil without a username", tasks)
	}
}
