package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emapp/employee-manager/internal/core/domain"
)

const usersCollection = "users"

// MongoUserRepository persists identity records in MongoDB. The address lives
// embedded in the user document, so user deletion removes the address in the
// same atomic write.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoAddress struct {
	Line1   string `bson:"address_line1"`
	Line2   string `bson:"address_line2"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	Country string `bson:"country"`
	ZipCode string `bson:"zip_code"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	DateOfBirth  string             `bson:"date_of_birth"`
	Address      mongoAddress       `bson:"address"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsStaff      bool               `bson:"is_staff"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
	LastLogin    time.Time          `bson:"last_login,omitempty"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := toDoc(user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := toDomain(doc)
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, domain.ErrUserNotFound)
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, domain.ErrUserNotFound)
}

func (r *MongoUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone}, domain.ErrUserNotFound)
}

func (r *MongoUserRepository) FindEmployeeByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return r.findOne(ctx, employeeFilter(oid), domain.ErrEmployeeNotFound)
}

func (r *MongoUserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoUserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return r.list(ctx, bson.M{"role": string(role)})
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toDoc(user)
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("replace user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.setField(ctx, id, bson.M{"password_hash": passwordHash})
}

func (r *MongoUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.setField(ctx, id, bson.M{"last_login": at})
}

func (r *MongoUserRepository) DeleteEmployee(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEmployeeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, employeeFilter(oid))
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, notFound error) (*domain.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := toDomain(doc)
	return &user, nil
}

func (r *MongoUserRepository) list(ctx context.Context, filter bson.M) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoUser
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, toDomain(doc))
	}
	return users, nil
}

func (r *MongoUserRepository) setField(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func employeeFilter(oid primitive.ObjectID) bson.M {
	return bson.M{"_id": oid, "role": string(domain.RoleEmployee)}
}

func toDoc(user *domain.User) mongoUser {
	return mongoUser{
		Email:       user.Email,
		Phone:       user.Phone,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DateOfBirth: user.DateOfBirth,
		Address: mongoAddress{
			Line1:   user.Address.Line1,
			Line2:   user.Address.Line2,
			City:    user.Address.City,
			State:   user.Address.State,
			Country: user.Address.Country,
			ZipCode: user.Address.ZipCode,
		},
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		IsStaff:      user.IsStaff,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		LastLogin:    user.LastLogin,
	}
}

func toDomain(doc mongoUser) domain.User {
	return domain.User{
		ID:          doc.ID.Hex(),
		Email:       doc.Email,
		Phone:       doc.Phone,
		FirstName:   doc.FirstName,
		LastName:    doc.LastName,
		DateOfBirth: doc.DateOfBirth,
		Address: domain.Address{
			Line1:   doc.Address.Line1,
			Line2:   doc.Address.Line2,
			City:    doc.Address.City,
			State:   doc.Address.State,
			Country: doc.Address.Country,
			ZipCode: doc.Address.ZipCode,
		},
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		IsStaff:      doc.IsStaff,
		IsActive:     doc.IsActive,
		CreatedAt:    doc.CreatedAt,
		LastLogin:    doc.LastLogin,
	}
}
