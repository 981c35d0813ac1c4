package cmd

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jjenkins/gabinete/internal/handlers"
	"github.com/jjenkins/gabinete/internal/store"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the legislative activity API server",
	Long:  `Start the JSON API that aggregates bills, committees and provisional measures for the configured deputy.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}

		appLogger := newLogger()

		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		noteStore := store.NewNoteStore(db)
		p := newPipelines(cfg, noteStore, prometheus.DefaultRegisterer, appLogger)

		app := fiber.New(fiber.Config{
			AppName: "Gabinete API",
		})

		app.Use(recover.New())
		app.Use(requestid.New())
		app.Use(logger.New())

		app.Get("/", handlers.HomeHandler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		api := app.Group("/api")
		api.Get("/", handlers.HomeHandler())
		api.Use(handlers.RequireBearer(cfg.JWTSecret))

		bounded := func(h fiber.Handler) fiber.Handler {
			return handlers.WithDeadline(h, cfg.RequestTimeout)
		}

		// Legislative activity routes
		api.Get("/proposicoes", bounded(handlers.ProposalsHandler(p.proposals, appLogger)))
		api.Get("/proposicoes-autores/:id", bounded(handlers.ProposalAuthorsHandler(p.proposals, appLogger)))
		api.Get("/medidas-provisorias", bounded(handlers.MeasuresHandler(p.measures, appLogger)))
		api.Get("/comissoes", bounded(handlers.CommitteesHandler(p.committees, appLogger)))

		// Technical note routes
		api.Post("/notas-tecnicas", bounded(handlers.CreateNoteHandler(noteStore, appLogger)))
		api.Get("/notas-tecnicas", bounded(handlers.NotesHandler(noteStore, appLogger)))
		api.Get("/notas-tecnicas/:id", bounded(handlers.NoteDetailHandler(noteStore, appLogger)))
		api.Put("/notas-tecnicas/:id", bounded(handlers.UpdateNoteHandler(noteStore, appLogger)))
		api.Delete("/notas-tecnicas/:id", bounded(handlers.DeleteNoteHandler(noteStore, appLogger)))

		app.Use(handlers.NotFoundHandler())

		log.Printf("Starting server on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
