package main

import "chemint/cmd/chemint-cli/cmd"

func main() {
	cmd.Execute()
}
