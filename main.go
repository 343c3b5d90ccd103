package main

import "github.com/jfmyers9/echonest/cmd"

func main() {
	cmd.Execute()
}
