package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

const auditCollection = "auth_events"

type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	Username  string `bson:"username"`
	Action    string `bson:"action"`
	Success   bool   `bson:"success"`
	Reason    string `bson:"reason,omitempty"`
	RemoteIP  string `bson:"remote_ip,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Username:  event.Username,
		Action:    event.Action,
		Success:   event.Success,
		Reason:    event.Reason,
		RemoteIP:  event.RemoteIP,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) ListByUsername(ctx context.Context, username string, limit int64) ([]*domain.AuthEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.AuthEvent
	for cursor.Next(ctx) {
		var me mongoAuthEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode auth event: %w", err)
		}
		events = append(events, &domain.AuthEvent{
			Username:  me.Username,
			Action:    me.Action,
			Success:   me.Success,
			Reason:    me.Reason,
			RemoteIP:  me.RemoteIP,
			Timestamp: unixToTime(me.Timestamp),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	return events, nil
}
