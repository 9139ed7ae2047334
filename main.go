package main

import (
	"courtbook/core/logger"
	"courtbook/core/server"
)

// @title CourtBook API
// @version 1.0
// @description Slot reservation and approval backend for a venue booking marketplace

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
