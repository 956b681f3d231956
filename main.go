package main

import "github.com/footdata/transfermarkt-api/cmd"

func main() {
	cmd.Execute()
}
