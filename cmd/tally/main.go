package main

import "tally/cmd/tally/root"

func main() {
	root.Execute()
}
