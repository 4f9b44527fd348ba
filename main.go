package main

import "restaurant-admin/cli"

func main() {
	cli.Execute()
}
