package main

import "fmt"

// Run executes the formats command.
func (c *FormatsCmd) Run(deps *Dependencies) error {
	for _, ext := range deps.Registry.Extensions() {
		fmt.Fprintln(deps.Stdout, ext)
	}
	return nil
}

// Run executes the version command.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "shirabe version %s\n", version)
	return nil
}
