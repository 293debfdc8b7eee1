/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
// @title           Global Risk Manager API
// @version         1.0
// @description     Contract risk evaluation and approval workflow API server
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey UserHeader
// @in header
// @name X-User-ID
// @description User ID of the acting user, trusted as-is (authentication is handled upstream)
package main

import "github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/cmd"

func main() {
	cmd.Execute()
}
