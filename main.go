package main

import "github.com/mpakhapoca/mget/cmd"

func main() {
	cmd.Execute()
}
