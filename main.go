package main

import "github.com/KostasZigo/gogitstore/cmd"

func main() {
	cmd.Execute()
}
