package cli

import (
	"bytes"
	"testing"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{
		"auth":     false,
		"ls":       false,
		"labels":   false,
		"apply":    false,
		"bulk":     false,
		"download": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q is not registered", name)
		}
	}
}

func TestBulk_RejectsWrongArity(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"bulk", "Reports/2024", "Status"})

	if err := root.Execute(); err == nil {
		t.Error("bulk with 2 args executed without error, want arity failure")
	}
}

func TestApply_RejectsWrongArity(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"apply", "file-id", "Status"})

	if err := root.Execute(); err == nil {
		t.Error("apply with 2 args executed without error, want arity failure")
	}
}
