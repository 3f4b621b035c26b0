package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/mhagen/assembly/internal/adapters/handler/http"
	"github.com/mhagen/assembly/internal/adapters/repository/postgres"
	"github.com/mhagen/assembly/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	assemblyRepo := postgres.NewAssemblyRepository(db)
	ballotRepo := postgres.NewBallotRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	receiptRepo := postgres.NewReceiptRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	ballotService := services.NewBallotService(assemblyRepo, ballotRepo, receiptRepo, logger)
	voteService := services.NewVoteService(ballotRepo, voteRepo, logger)
	tallyService := services.NewTallyService(ballotRepo, voteRepo, resultRepo, logger)
	receiptService := services.NewReceiptService(receiptRepo)

	handler := http.NewHandler(
		http.NewBallotHandler(ballotService),
		http.NewVoteHandler(voteService, receiptService),
		http.NewResultHandler(tallyService),
	)
	server := &stdhttp.Server{Addr: "0.0.0.0:8080", Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	dbName := os.Getenv("POSTGRES_DB")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
