package main

import "sauconv/cmd"

func main() {
	cmd.Execute()
}
