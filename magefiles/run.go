//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the CLI with --help to sanity-check the build.
func (Run) Cli() error {
	fmt.Println("Run shellforge...")
	if _, err := executeCmd("go", withArgs("run", "main.go", "--help"), withStream()); err != nil {
		return err
	}
	return nil
}
