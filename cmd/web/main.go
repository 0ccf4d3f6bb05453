package main

import "skillswap_backend/internal/app"

func main() {
	app.Run()
}
