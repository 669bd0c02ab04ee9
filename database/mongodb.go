package database

import (
	"api/utils"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	MONGO_TIMEOUT = 20 * time.Second

	COLLECTION_AGENCIES = "agencies"
	COLLECTION_USERS    = "users"
	COLLECTION_LEADS    = "leads"
	COLLECTION_PROPS    = "properties"
	COLLECTION_DEALS    = "deals"
	COLLECTION_ALERTS   = "alerts"
	COLLECTION_CATALOGS = "shared_catalogs"
	COLLECTION_MESSAGES = "messages"
)

var (
	mongoClient *mongo.Client
	mongoOnce   sync.Once
	mongoErr    error
)

func GetDB() string {
	environment := os.Getenv(utils.ENV)

	if environment == utils.ENV_RELEASE {
		return "production"
	}

	if environment == utils.ENV_HOMOLOG {
		return "staging"
	}

	if environment == utils.ENV_DEVELOPMENT {
		return "development"
	}

	panic("[MongoDB] Invalid DB name")
}

// MongoClient returns the shared client, dialing it on first use.
func MongoClient() (*mongo.Client, error) {
	mongoOnce.Do(func() {
		opts := options.Client().ApplyURI(os.Getenv(utils.MONGODB_URI))
		mongoClient, mongoErr = mongo.Connect(opts)
	})
	return mongoClient, mongoErr
}

// Collection resolves a collection on the environment database.
func Collection(name string) (*mongo.Collection, error) {
	client, err := MongoClient()
	if err != nil {
		return nil, err
	}
	return client.Database(GetDB()).Collection(name), nil
}
