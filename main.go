package main

import "github.com/pders01/git-header/cmd"

func main() {
	cmd.Execute()
}
