package main

import "github.com/gaurav-prasanna/coursepipe/cmd"

func main() {
	cmd.Execute()
}
