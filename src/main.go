package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"

	"Backend-Encuestas/src/database"
	"Backend-Encuestas/src/jobs"
	"Backend-Encuestas/src/routes"
	"Backend-Encuestas/src/seeder"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {

	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	database.InitRedis()
	database.InitAsynq()

	if err := seeder.SeedDefaultSurvey(context.Background()); err != nil {
		log.Println("⚠️ Survey seeding failed:", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	routes.InitRoutes(app)

	// purge-drafts worker, only runs when Redis is configured
	go jobs.StartWorker()

	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888"
	}

	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}
}
