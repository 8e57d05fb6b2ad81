package main

import (
	"github.com/joho/godotenv"

	"visitor-kiosk/cmd"
)

func main() {
	godotenv.Load()
	cmd.Execute()
}
