package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"learnhub/config"
	"learnhub/store"
	"learnhub/store/gormstore"
	"learnhub/store/mongostore"
)

// Stores is the global repository registry, populated by Connect. The
// concrete backend is fixed at process start and never re-selected.
var Stores store.Stores

// Connect selects the persistence backend from configuration and wires the
// entity repositories.
func Connect() {
	switch config.AppConfig.StoreDriver {
	case "mongo":
		connectMongo()
	default:
		connectPostgres()
	}
}

func connectPostgres() {
	db, err := gorm.Open(postgres.Open(config.AppConfig.DatabaseUrl), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	log.Println("Running migrations...")
	stores, err := gormstore.New(db)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	Stores = stores
	log.Println("Connected to PostgreSQL")
}

func connectMongo() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoopts.Client().ApplyURI(config.AppConfig.MongoUrl))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	stores, err := mongostore.New(ctx, client.Database(config.AppConfig.MongoDbName))
	if err != nil {
		log.Fatalf("Failed to prepare MongoDB indexes: %v", err)
	}
	Stores = stores
	log.Println("Connected to MongoDB")
}
