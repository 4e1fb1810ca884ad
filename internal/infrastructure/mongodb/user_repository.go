package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/internal/domain/repository"
)

// UsersCollection nombre de la colección de usuarios.
const UsersCollection = "users"

// codeNamespaceExists lo devuelve create cuando la colección ya existe.
const codeNamespaceExists = 48

var _ repository.UserRepository = (*UserRepo)(nil)

// withoutPassword proyección usada en toda lectura que no sea el login.
var withoutPassword = bson.M{"password": 0}

// UserRepo implementación del puerto UserRepository sobre MongoDB.
type UserRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{db: db, coll: db.Collection(UsersCollection)}
}

// EnsureIndexes crea la colección con validación de esquema (campos requeridos y
// enum de roles) y los índices únicos de email y code. Es idempotente.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	validator := bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"fullName", "email", "password", "code", "role"},
		"properties": bson.M{
			"fullName": bson.M{"bsonType": "string"},
			"email":    bson.M{"bsonType": "string"},
			"password": bson.M{"bsonType": "string"},
			"code":     bson.M{"bsonType": "string"},
			"role":     bson.M{"enum": roleEnum()},
			"supervisor_id": bson.M{
				"bsonType": bson.A{"objectId", "null"},
			},
		},
	}}
	err := r.db.CreateCollection(ctx, UsersCollection, options.CreateCollection().SetValidator(validator))
	var cmdErr mongo.CommandError
	if err != nil && !(errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists) {
		return fmt.Errorf("crear colección users: %w", err)
	}

	_, err = r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_code")},
	})
	if err != nil {
		return fmt.Errorf("crear índices users: %w", err)
	}
	return nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	doc, err := fromEntity(user)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translateError("insert user", err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

// FindByID obtiene un usuario por ID (sin hash).
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "get user by id", bson.M{"_id": oid}, options.FindOne().SetProjection(withoutPassword))
}

// FindByEmail obtiene un usuario por email (con hash, para login).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", bson.M{"email": email})
}

// FindByEmailOrCode busca colisiones de email o código.
func (r *UserRepo) FindByEmailOrCode(ctx context.Context, email, code string) (*entity.User, error) {
	filter := bson.M{"$or": bson.A{bson.M{"email": email}, bson.M{"code": code}}}
	return r.findOne(ctx, "get user by email or code", filter, options.FindOne().SetProjection(withoutPassword))
}

// List devuelve todos los usuarios en orden de creación.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	opts := options.Find().SetProjection(withoutPassword).SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	list := make([]*entity.User, 0, len(docs))
	for i := range docs {
		list = append(list, docs[i].toEntity())
	}
	return list, nil
}

// Update reemplaza los campos mutables y devuelve el documento resultante.
func (r *UserRepo) Update(ctx context.Context, id string, upd entity.UserUpdate) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	supervisor, err := parseSupervisor(upd.SupervisorID)
	if err != nil {
		return nil, err
	}
	set := bson.M{"$set": bson.M{
		"fullName":      upd.FullName,
		"email":         upd.Email,
		"code":          upd.Code,
		"role":          upd.Role,
		"supervisor_id": supervisor,
		"updatedAt":     upd.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, set, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, translateError("update user", err)
	}
	return doc.toEntity(), nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *UserRepo) findOne(ctx context.Context, op string, filter bson.M, opts ...*options.FindOneOptions) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toEntity(), nil
}

// translateError convierte violaciones de índice único en ErrDuplicateAccount.
func translateError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateAccount
	}
	return fmt.Errorf("%s: %w", op, err)
}

func roleEnum() bson.A {
	roles := make(bson.A, 0, len(entity.Roles))
	for _, r := range entity.Roles {
		roles = append(roles, r)
	}
	return roles
}
