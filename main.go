package main

import "tenant-booking/cmd"

func main() {
	cmd.Execute()
}
