package main

import "fichaje_backend/internal/app"

func main() {
	app.Run()
}
