package main

import (
	"fmt"
	"log"
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/api/handlers"
	"github.com/fleetworks/fleet-maintenance-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()
	defer zap.L().Sync()

	if err := a.Initialize(); err != nil { //initialize database and router
		log.Fatal(err)
	}

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	zap.S().Infow("fleet-maintenance-api is up and running",
		"port", a.Config.Port,
		"url", a.Config.BaseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", a.Config.Port), cors(a.Router)))
}
