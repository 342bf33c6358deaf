package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"remit-transfer/internal/custom_err"
	"remit-transfer/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStorage struct {
	client        *mongo.Client
	database      *mongo.Database
	notifications *mongo.Collection
	deviceTokens  *mongo.Collection
}

func NewMongoStorage(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStorage, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctxPing, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(database)
	notifications := db.Collection("notifications")
	deviceTokens := db.Collection("device_tokens")

	// Уникальность по event_id защищает архив от дублей при повторной доставке
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	ctxIndex, cancelIndex := context.WithTimeout(ctx, timeout)
	defer cancelIndex()

	if _, err := notifications.Indexes().CreateOne(ctxIndex, indexModel); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &MongoStorage{
		client:        client,
		database:      db,
		notifications: notifications,
		deviceTokens:  deviceTokens,
	}, nil
}

func (s *MongoStorage) SaveNotification(ctx context.Context, notification *models.DeliveredNotification) error {
	notification.DeliveredAt = time.Now()

	_, err := s.notifications.InsertOne(ctx, notification)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to save notification: %w", err)
	}

	return nil
}

var ErrNotificationNotFound = errors.New("notification not found")

func (s *MongoStorage) GetNotificationByEventID(ctx context.Context, eventID string) (*models.DeliveredNotification, error) {
	var notification models.DeliveredNotification

	filter := bson.M{"event_id": eventID}
	err := s.notifications.FindOne(ctx, filter).Decode(&notification)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &notification, nil
}

func (s *MongoStorage) GetDeviceToken(ctx context.Context, userID string) (string, error) {
	var doc struct {
		UserID string `bson:"user_id"`
		Token  string `bson:"token"`
	}

	filter := bson.M{"user_id": userID}
	err := s.deviceTokens.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", custom_err.ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to get device token: %w", err)
	}

	return doc.Token, nil
}

func (s *MongoStorage) Close() error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}
