package main

import "github.com/erik-winther/tagpipe/cmd"

func main() {
	cmd.Execute()
}
