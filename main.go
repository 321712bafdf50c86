package main

import "filesize/cmd"

func main() {
	cmd.Execute()
}
