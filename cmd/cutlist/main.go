package main

import "github.com/cutlistpro/cutlist/cmd/cutlist/commands"

func main() {
	commands.Execute()
}
