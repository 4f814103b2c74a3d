package main

import "github.com/amish-gaur/DataPriv/cmd"

func main() {
	cmd.Execute()
}
