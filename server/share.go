package server

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"assertgen/codegen"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type ShareRequest struct {
	Args    string          `json:"args"`
	Options codegen.Options `json:"options"`
}

type ShareResponse struct {
	Id string `json:"id"`
}

const expiration int32 = 7 * 86400 // 7 days

const collectionName = "playgrounds"

var shareInit atomic.Bool

func (request *ShareRequest) handle() (ShareResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if mongodb == nil {
		return ShareResponse{}, fmt.Errorf("sharing not enabled")
	}

	collection := mongodb.Collection(collectionName)

	// Expire documents
	if !shareInit.Swap(true) {
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(expiration),
		})

		if err != nil {
			shareInit.Store(false)
			return ShareResponse{}, err
		}
	}

	id, err := gonanoid.New()
	if err != nil {
		return ShareResponse{}, err
	}

	_, err = collection.InsertOne(ctx, bson.M{
		"_id":       id,
		"createdAt": time.Now(),
		"args":      request.Args,
		"options":   request.Options,
	})

	if err != nil {
		return ShareResponse{}, err
	}

	log.Infof("shared playground %s", id)

	return ShareResponse{Id: id}, nil
}
