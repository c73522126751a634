package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marceloslacerda/glpigo/util"
)

func TestPathExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := util.PathExists(dir)
	if err != nil || !ok {
		t.Errorf("expected existing directory, got %v %v", ok, err)
	}

	name := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(name, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	ok, err = util.PathExists(name)
	if err != nil || !ok {
		t.Errorf("expected existing file, got %v %v", ok, err)
	}

	ok, err = util.PathExists(filepath.Join(dir, "absent.txt"))
	if err != nil || ok {
		t.Errorf("expected missing file, got %v %v", ok, err)
	}
}
