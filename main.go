package main

import "github.com/jjenkins/gabinete/cmd"

func main() {
	cmd.Execute()
}
