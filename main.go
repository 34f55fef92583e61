package main

import "github.com/nimbusctl/nimbus/cmd"

func main() {
	cmd.Execute()
}
