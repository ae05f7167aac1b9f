package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/Abhin-Krishna-MP/CakeFarm/config"
	"github.com/Abhin-Krishna-MP/CakeFarm/models"
)

// OrderStore persists orders in the "orders" collection. Order numbers come
// from an atomic counter document in "counters", incremented inside the same
// transaction as the insert so concurrent creations never share a number.
type OrderStore struct {
	orders   *mongo.Collection
	counters *mongo.Collection
	client   *mongo.Client
}

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{
		orders:   database.OpenCollection(db, "orders"),
		counters: database.OpenCollection(db, "counters"),
		client:   db.Client(),
	}
}

// nextOrderNumber atomically increments and returns the order sequence.
func (s *OrderStore) nextOrderNumber(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "orderNumber"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}

	return counter.Seq, nil
}

// Create inserts the order as a single atomic unit. The counter increment and
// the insert run in one transaction: a failure leaves neither a consumed
// sequence gap visible as an order nor a partial document.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		number, err := s.nextOrderNumber(sessCtx)
		if err != nil {
			return nil, err
		}
		order.OrderNumber = number

		if _, err := s.orders.InsertOne(sessCtx, order); err != nil {
			return nil, err
		}
		return nil, nil
	})

	return err
}

func (s *OrderStore) GetByID(ctx context.Context, orderId string) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"orderId": orderId}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) GetByToken(ctx context.Context, token string) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"orderToken": token}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) UpdateStatusFrom(ctx context.Context, orderId, from, to string, at time.Time) (bool, error) {
	result, err := s.orders.UpdateOne(ctx,
		bson.M{"orderId": orderId, "orderStatus.status": from},
		bson.M{"$set": bson.M{
			"orderStatus.status":    to,
			"orderStatus.updatedAt": at,
			"updatedAt":             at,
		}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (s *OrderStore) MarkDelivered(ctx context.Context, token string, at time.Time) (bool, error) {
	result, err := s.orders.UpdateOne(ctx,
		bson.M{"orderToken": token, "ticketStatus": models.TicketActive},
		bson.M{"$set": bson.M{
			"ticketStatus": models.TicketDelivered,
			"updatedAt":    at,
		}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (s *OrderStore) ExpireBefore(ctx context.Context, cutoff string, statuses []string, at time.Time) (int64, error) {
	result, err := s.orders.UpdateMany(ctx,
		bson.M{
			"expiryDate":         bson.M{"$lte": cutoff},
			"orderStatus.status": bson.M{"$in": statuses},
		},
		bson.M{"$set": bson.M{
			"orderStatus.status":    models.StatusExpired,
			"orderStatus.updatedAt": at,
			"updatedAt":             at,
		}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userId string) ([]models.Order, error) {
	return s.list(ctx, bson.M{"userId": userId})
}

func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.list(ctx, bson.M{})
}

func (s *OrderStore) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderNumber", Value: -1}})

	cursor, err := s.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
