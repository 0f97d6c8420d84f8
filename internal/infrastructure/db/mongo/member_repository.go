package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gympulse/gym-management-api/internal/core/domain"
)

const membersCollection = "members"

type MongoMemberRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MongoMemberRepository {
	return &MongoMemberRepository{db: db, coll: db.Collection(membersCollection)}
}

type mongoMember struct {
	ID               int64  `bson:"_id"`
	FirstName        string `bson:"first_name"`
	LastName         string `bson:"last_name"`
	Email            string `bson:"email"`
	Phone            string `bson:"phone"`
	DateOfBirth      string `bson:"date_of_birth"`
	Address          string `bson:"address"`
	EmergencyContact string `bson:"emergency_contact"`
	EmergencyPhone   string `bson:"emergency_phone"`
	MembershipType   string `bson:"membership_type"`
	StartDate        string `bson:"start_date"`
	EndDate          string `bson:"end_date"`
	Notes            string `bson:"notes,omitempty"`
	IsActive         bool   `bson:"is_active"`
	CreatedAt        int64  `bson:"created_at"`
	UpdatedAt        int64  `bson:"updated_at"`
}

func (r *MongoMemberRepository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	id, err := nextSequence(ctx, r.db, "members")
	if err != nil {
		return nil, err
	}

	doc := fromDomainMember(member)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateMemberEmail
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}

	created := *member
	created.ID = id
	return &created, nil
}

func (r *MongoMemberRepository) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	var mm mongoMember
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mm); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return mm.toDomain(), nil
}

func (r *MongoMemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, nil)
	if err != nil {
		return false, fmt.Errorf("count members: %w", err)
	}
	return n > 0, nil
}

func (r *MongoMemberRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Member, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*domain.Member
	for cursor.Next(ctx) {
		var mm mongoMember
		if err := cursor.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode member: %w", err)
		}
		members = append(members, mm.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (r *MongoMemberRepository) Update(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	doc := fromDomainMember(member)
	doc.ID = member.ID
	doc.UpdatedAt = time.Now().UTC().Unix()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": member.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMemberNotFound
	}

	updated := *member
	updated.UpdatedAt = unixToTime(doc.UpdatedAt)
	return &updated, nil
}

func (r *MongoMemberRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_active":  active,
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("set member active: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *MongoMemberRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func fromDomainMember(m *domain.Member) mongoMember {
	return mongoMember{
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		Phone:            m.Phone,
		DateOfBirth:      m.DateOfBirth,
		Address:          m.Address,
		EmergencyContact: m.EmergencyContact,
		EmergencyPhone:   m.EmergencyPhone,
		MembershipType:   string(m.MembershipType),
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Notes:            m.Notes,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt.Unix(),
		UpdatedAt:        m.UpdatedAt.Unix(),
	}
}

func (mm *mongoMember) toDomain() *domain.Member {
	return &domain.Member{
		ID:               mm.ID,
		FirstName:        mm.FirstName,
		LastName:         mm.LastName,
		Email:            mm.Email,
		Phone:            mm.Phone,
		DateOfBirth:      mm.DateOfBirth,
		Address:          mm.Address,
		EmergencyContact: mm.EmergencyContact,
		EmergencyPhone:   mm.EmergencyPhone,
		MembershipType:   domain.MembershipType(mm.MembershipType),
		StartDate:        mm.StartDate,
		EndDate:          mm.EndDate,
		Notes:            mm.Notes,
		IsActive:         mm.IsActive,
		CreatedAt:        unixToTime(mm.CreatedAt),
		UpdatedAt:        unixToTime(mm.UpdatedAt),
	}
}
