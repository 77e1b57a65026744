package main

import "github.com/mabhi256/jdepcheck/cmd"

func main() {
	cmd.Execute()
}
