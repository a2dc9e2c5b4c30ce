package main

import (
	"tubepost/cmd/handlers"
	"tubepost/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
