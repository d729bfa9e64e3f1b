package main

import "github.com/yamdb-api/commands"

func main() {
	commands.Execute()
}
