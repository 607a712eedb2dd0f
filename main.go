package main

import "github.com/tntzzxwife/my-order-app/cmd"

func main() {
	cmd.Execute()
}
