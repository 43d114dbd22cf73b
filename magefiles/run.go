//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens a window and flies with the default settings.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Flies 300 frames without a window and writes a flight log.
func (Run) Headless() error {
	fmt.Println("Run engine headless...")
	args := []string{"run", ".", "-headless", "-frames", "300", "-telemetry", "logs/flight.csv"}
	if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}
