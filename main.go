package main

import "github.com/jeerrry/gitlit/cmd"

func main() {
	cmd.Execute()
}
