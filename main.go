package main

import "github.com/sztupy/tumblr2ghpages/cmd"

func main() {
	cmd.Execute()
}
