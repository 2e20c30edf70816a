package main

import "github.com/melbooking/melbooking_backend/cmd"

func main() {
	cmd.Execute()
}
