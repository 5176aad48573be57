package tokenRepo

import (
	"context"
	"errors"
	"time"

	"calendary/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/oauth2"
)

// storedToken is the persisted shape of an OAuth grant. A refresh token
// survives token refreshes even when Google omits it from the response.
type storedToken struct {
	UserID       string    `bson:"userId"`
	AccessToken  string    `bson:"accessToken"`
	RefreshToken string    `bson:"refreshToken"`
	Expiry       time.Time `bson:"expiry"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type mongoTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoTokenRepo returns a TokenRepository backed by the tokens collection.
func NewMongoTokenRepo() TokenRepository {
	return &mongoTokenRepo{coll: database.Collection("tokens")}
}

// Save upserts the grant for a user, keeping the previous refresh token when
// the new one is empty.
func (r *mongoTokenRepo) Save(ctx context.Context, userID string, token *oauth2.Token) error {
	refresh := token.RefreshToken
	if refresh == "" {
		if existing, err := r.Get(ctx, userID); err == nil {
			refresh = existing.RefreshToken
		}
	}

	doc := storedToken{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: refresh,
		Expiry:       token.Expiry,
		UpdatedAt:    time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"userId": userID}, doc, opts)
	return err
}

func (r *mongoTokenRepo) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	var doc storedToken
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken:  doc.AccessToken,
		RefreshToken: doc.RefreshToken,
		Expiry:       doc.Expiry,
	}, nil
}

func (r *mongoTokenRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
