package main

import "github.com/rpge/build-tools/cmd"

func main() {
	cmd.Execute()
}
