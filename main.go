package main

import "github.com/notargets/gocell/cmd"

func main() {
	cmd.Execute()
}
