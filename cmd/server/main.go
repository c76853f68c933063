package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/RoiCoDA/AbsoluteCinema/internal/config"
	"github.com/RoiCoDA/AbsoluteCinema/internal/database"
	"github.com/RoiCoDA/AbsoluteCinema/internal/handler"
	"github.com/RoiCoDA/AbsoluteCinema/internal/queue"
	"github.com/RoiCoDA/AbsoluteCinema/internal/repository"
	"github.com/RoiCoDA/AbsoluteCinema/internal/router"
	"github.com/RoiCoDA/AbsoluteCinema/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stores, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatalf("stores: %v", err)
	}
	if err := stores.Catalog.Seed(ctx, repository.DemoCatalog()); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	if err := repository.SeedDemo(ctx, stores); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled, codes kept in process")
	}
	var codes service.CodeStore
	if rdb != nil {
		codes = service.NewRedisCodeStore(rdb)
	} else {
		codes = service.NewMemoryCodeStore()
	}

	users := service.NewUserService(stores)
	auth := service.NewAuthService(users, codes, cfg.JWTSecret, cfg.AccessTTLMin,
		time.Duration(cfg.CodeTTLMin)*time.Minute, cfg.AdminPhones)
	rooms := service.NewRoomService(stores)
	bookings := service.NewBookingService(stores, queue.PublishSeatsReserved)

	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:    &handler.AuthHandler{Auth: auth, Users: users},
		Catalog: &handler.CatalogHandler{Catalog: stores.Catalog, Rooms: rooms, Rand: rand.New(rand.NewSource(time.Now().UnixNano()))},
		Rooms:   &handler.RoomHandler{Rooms: rooms},
		Booking: &handler.BookingHandler{Bookings: bookings},
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// buildStores wires either the MySQL repositories or the in-memory
// stores, depending on whether a database is configured. The demo
// environment runs memory-only; both sets satisfy the same interfaces
// and the services cannot tell them apart.
func buildStores(ctx context.Context, cfg config.Config) (repository.Stores, error) {
	if !cfg.UseDatabase() {
		log.Println("no database configured; using in-memory stores")
		return repository.Stores{
			Users:      repository.NewMemoryUserStore(),
			Catalog:    repository.NewMemoryCatalogStore(),
			Proposals:  repository.NewMemoryProposalStore(),
			Votes:      repository.NewMemoryVoteStore(),
			Screenings: repository.NewMemoryScreeningStore(),
			Bookings:   repository.NewMemoryBookingStore(),
		}, nil
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return repository.Stores{}, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		return repository.Stores{}, err
	}
	return repository.Stores{
		Users:      repository.NewUserRepo(db),
		Catalog:    repository.NewCatalogRepo(db),
		Proposals:  repository.NewProposalRepo(db),
		Votes:      repository.NewVoteRepo(db),
		Screenings: repository.NewScreeningRepo(db),
		Bookings:   repository.NewBookingRepo(db),
	}, nil
}
