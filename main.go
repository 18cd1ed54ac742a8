package main

import "github.com/yeisme/codescope/cmd"

func main() {
	cmd.Execute()
}
