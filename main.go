package main

import "github.com/aprs3/f1dashboard-go/cmd"

func main() {
	cmd.Execute()
}
