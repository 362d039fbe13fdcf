package main

import "github.com/shaharia-lab/venuebook/cmd"

func main() {
	cmd.Execute()
}
