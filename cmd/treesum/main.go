package main

import "github.com/aweris/treesum/cmd/treesum/cmd"

func main() {
	cmd.Execute()
}
