package main

import "zipbatch/cmd"

func main() {
	cmd.Execute()
}
