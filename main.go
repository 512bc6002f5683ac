package main

import "github.com/nill-home/face-insight/cmd"

func main() {
	cmd.Execute()
}
