package main

import "github.com/jssrooms/backend/cmd"

func main() {
	cmd.Execute()
}
