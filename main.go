package main

import "github.com/magmast/rzork/cmd"

func main() {
	cmd.Execute()
}
