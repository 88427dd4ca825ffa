package main

import (
	"civiclens/cmd"
)

func main() {
	cmd.Execute()
}
