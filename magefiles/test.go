//go:build mage

package main

import (
	"strings"

	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests of every package except the GLFW window.
func (Test) Unit() error {
	out, err := executeCmd("go", withArgs("list", "./..."))
	if err != nil {
		return err
	}
	args := []string{"test", "-count=1"}
	for _, pkg := range strings.Split(strings.TrimSpace(out), "\n") {
		if pkg == "" || strings.HasSuffix(pkg, "/platform/desktop") {
			continue
		}
		args = append(args, pkg)
	}
	_, err = executeCmd("go", withArgs(args...), withStream())
	return err
}
