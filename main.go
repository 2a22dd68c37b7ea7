package main

import "github.com/iksnae/cursor-chronicle/cmd"

func main() {
	cmd.Execute()
}
