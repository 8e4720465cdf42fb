package config

import (
	"os"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// restoring the original directory on cleanup. It mirrors t.Chdir from
// newer Go releases, which is unavailable on this toolchain.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
