package server

import (
	"context"
	"fmt"
	"time"

	"assertgen/codegen"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type GetSharedRequest struct {
	Id string `json:"id"`
}

type GetSharedResponse struct {
	Args    string          `json:"args" bson:"args"`
	Options codegen.Options `json:"options" bson:"options"`
}

func (request *GetSharedRequest) handle() (GetSharedResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if mongodb == nil {
		return GetSharedResponse{}, fmt.Errorf("sharing not enabled")
	}

	collection := mongodb.Collection(collectionName)

	var response GetSharedResponse
	err := collection.FindOne(ctx, bson.M{"_id": request.Id}).Decode(&response)
	if err != nil {
		return GetSharedResponse{}, fmt.Errorf("playground not found")
	}

	return response, nil
}
