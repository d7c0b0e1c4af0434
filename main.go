package main

import "fleet-console/cmd"

func main() {
	cmd.Execute()
}
