package main

import "billplan/cmd"

func main() {
	cmd.Execute()
}
