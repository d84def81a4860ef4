package main

import "github.com/papapumpkin/meridian/cmd"

func main() {
	cmd.Execute()
}
