package main

import "github.com/tourcolombia/booking/cmd"

func main() {
	cmd.Execute()
}
