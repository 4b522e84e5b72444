package main

import "lpapredictor/cli"

func main() {
	cli.Execute()
}
