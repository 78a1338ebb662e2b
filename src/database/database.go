package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DBName = "EncuestasDB"

var (
	client     *mongo.Client
	once       sync.Once // guards against a second ConnectMongoDB run
	connectErr error

	SurveyCollection       *mongo.Collection
	QuestionCollection     *mongo.Collection
	SkipLogicCollection    *mongo.Collection
	RegistrationCollection *mongo.Collection
	PatientCollection      *mongo.Collection
	UserCollection         *mongo.Collection
)

// ConnectMongoDB connects to MongoDB exactly once and binds the shared
// collection handles.
func ConnectMongoDB() error {

	// Load environment variables from .env when present.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() {
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			log.Fatal("❌ MongoDB ping failed:", connectErr)
			return
		}

		log.Println("✅ MongoDB connected successfully")

		SurveyCollection = GetCollection(DBName, "surveys")
		QuestionCollection = GetCollection(DBName, "questions")
		SkipLogicCollection = GetCollection(DBName, "skiplogic")
		RegistrationCollection = GetCollection(DBName, "registrations")
		PatientCollection = GetCollection(DBName, "patients")
		UserCollection = GetCollection(DBName, "users")
	})

	return connectErr
}

// GetCollection returns a collection handle from the shared client.
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}
