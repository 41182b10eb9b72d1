package main

import (
	"os"

	"horse.fit/honyaku/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
