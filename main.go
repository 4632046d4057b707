package main

import "github.com/klytics/csvbook/cmd"

func main() {
	cmd.Execute()
}
