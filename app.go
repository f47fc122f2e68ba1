package main

import "github.com/vcsaturninus/chang-go/cmd"

func main() {
	cmd.Run()
}
