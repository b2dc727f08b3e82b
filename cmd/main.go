package main

import (
	"fmt"
	"os"

	_ "smart_fan/docs"
)

// @title                       Smart Fan API
// @version                     1.0
// @description                 Hysteresis fan control evaluation, device telemetry and energy savings.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "smartfan:", err)
		os.Exit(1)
	}
}
