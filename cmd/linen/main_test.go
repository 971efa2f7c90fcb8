package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 21 || lines[0] != "celu" {
		t.Errorf("list = %q", out)
	}
}

func TestApply(t *testing.T) {
	out, err := run(t, "apply", "--fn", "relu", "--", "-1", "0", "2.5")
	if err != nil {
		t.Fatal(err)
	}
	if out != "0 0 2.5" {
		t.Errorf("apply = %q", out)
	}

	if _, err := run(t, "apply", "--fn", "mish", "1"); err == nil {
		t.Errorf("unknown activation should fail")
	}
	if _, err := run(t, "apply", "--dtype", "int8", "1"); err == nil {
		t.Errorf("unknown dtype should fail")
	}
}

func TestPReLU(t *testing.T) {
	out, err := run(t, "prelu", "--", "-2", "0", "3")
	if err != nil {
		t.Fatal(err)
	}
	if out != "-0.02 0 3" {
		t.Errorf("prelu = %q", out)
	}

	out, err = run(t, "prelu", "--slope", "0.5", "--dtype", "float16", "--", "-3")
	if err != nil {
		t.Fatal(err)
	}
	if out != "-1.5" {
		t.Errorf("prelu = %q", out)
	}
}
