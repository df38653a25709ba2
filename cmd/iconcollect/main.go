package main

import "github.com/ideamans/iconcollect/cmd/iconcollect/cmd"

func main() {
	cmd.Execute()
}
