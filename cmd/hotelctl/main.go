package main

import "hotel_booking/internal/adapters/cli"

func main() {
	cli.Execute()
}
