package main

import "lohnrechner/internal/app/server"

func main() {
	server.Run()
}
