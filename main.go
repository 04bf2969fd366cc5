package main

import (
	"os"

	"github.com/authgrid/auth-service/app"
)

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
