package main

import (
	"urlate.dev/backend/cmd/app"
)

func main() {
	app.Run()
}
