package main

import "github.com/rzbill/tms/pkg/cli/cmd"

func main() {
	cmd.Execute()
}
