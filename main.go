package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"locgm/internal/models"
	"locgm/internal/repositories"
	"locgm/internal/server"
	"locgm/internal/session"
	"locgm/pkg/config"
	"locgm/pkg/logger"
	"locgm/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// --- Persistence Gateway ---
	// The connection is opened on first use; startup does not wait for the database.
	dialector, err := repositories.Dialector(cfg.DB.Driver, cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}
	gw := repositories.NewGatewayFromDialector(dialector, log)
	defer gw.Close()

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(gw)
	companyRepo := repositories.NewGORMCompanyRepository(gw)
	placeRepo := repositories.NewMemoryPlaceRepository()
	postRepo := repositories.NewMemoryPostRepository()

	seedPlaces(placeRepo, log)
	seedPosts(postRepo, log)

	deps := server.Deps{
		Log:       log,
		Sessions:  session.NewProvider(session.Config{Secure: cfg.Session.Secure}),
		Gateway:   gw,
		Users:     userRepo,
		Companies: companyRepo,
		Places:    placeRepo,
		Posts:     postRepo,
	}

	// --- RabbitMQ (optional) ---
	if cfg.RabbitMQ.URL != "" {
		mqConfig := rabbitmq.DefaultConfig(cfg.RabbitMQ.URL)
		mqClient, err := rabbitmq.NewClient(mqConfig)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, feed events disabled")
		} else {
			defer mqClient.Close()
			deps.Publisher = mqClient
			startFeedConsumer(mqClient, mqConfig.Queue, log)
		}
	}

	app := server.New(deps)

	// --- Start HTTP Server ---
	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// startFeedConsumer logs every feed event delivered to queue.
func startFeedConsumer(client *rabbitmq.Client, queue string, log zerolog.Logger) {
	handler := func(msg amqp.Delivery) error {
		log.Info().
			Str("routing_key", msg.RoutingKey).
			RawJSON("post", msg.Body).
			Msg("feed event received")
		return nil
	}
	if err := client.Consume(queue, handler); err != nil {
		log.Warn().Err(err).Msg("failed to start feed consumer")
	}
}

// seedPlaces fills the map with the initial places.
func seedPlaces(repo repositories.PlaceRepository, log zerolog.Logger) {
	places := []models.Place{
		{Name: "Restaurante Sabor da Terra", Type: models.PlaceRestaurante, Lat: -10.9095, Lng: -37.0748, Rating: 4.6, Address: "Rua João Pessoa, 120", OwnerEmail: "contato@sabordaterra.com"},
		{Name: "Mercado Central", Type: models.PlaceMercado, Lat: -10.9128, Lng: -37.0512, Rating: 4.2, Address: "Av. Otoniel Dórea, s/n", OwnerEmail: "adm@mercadocentral.com"},
		{Name: "Pousada Beira Mar", Type: models.PlacePousada, Lat: -10.9837, Lng: -37.0465, Rating: 4.8, Address: "Av. Santos Dumont, 2100", OwnerEmail: "reservas@beiramar.com"},
		{Name: "Farmácia Popular", Type: models.PlaceFarmacia, Lat: -10.9201, Lng: -37.0603, Rating: 3.9, Address: "Rua Laranjeiras, 45", OwnerEmail: "farmacia@popular.com"},
		{Name: "Orla de Atalaia", Type: models.PlaceTurismo, Lat: -10.9873, Lng: -37.0480, Rating: 4.9, Address: "Av. Santos Dumont", OwnerEmail: "turismo@prefeitura.gov.br"},
	}
	for i := range places {
		if err := repo.Create(&places[i]); err != nil {
			log.Error().Err(err).Str("place", places[i].Name).Msg("failed to seed place")
		}
	}
	log.Debug().Int("count", len(places)).Msg("seeded places")
}

// seedPosts fills the feed with the initial posts, oldest first.
func seedPosts(repo repositories.PostRepository, log zerolog.Logger) {
	now := time.Now()
	posts := []models.Post{
		{AuthorEmail: "adm@mercadocentral.com", CompanyName: "Mercado Central", Content: "Feira de frutas toda quarta-feira com 20% de desconto.", CreatedAt: now.Add(-48 * time.Hour)},
		{AuthorEmail: "reservas@beiramar.com", CompanyName: "Pousada Beira Mar", Content: "Pacote de fim de semana com café da manhã incluso.", CreatedAt: now.Add(-24 * time.Hour)},
		{AuthorEmail: "contato@sabordaterra.com", CompanyName: "Sabor da Terra", Content: "Novo prato do dia: moqueca de camarão!", CreatedAt: now.Add(-2 * time.Hour)},
	}
	for i := range posts {
		if err := repo.Create(&posts[i]); err != nil {
			log.Error().Err(err).Str("author", posts[i].AuthorEmail).Msg("failed to seed post")
		}
	}
	log.Debug().Int("count", len(posts)).Msg("seeded posts")
}
