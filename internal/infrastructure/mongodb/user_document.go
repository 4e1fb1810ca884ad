package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
)

// userDocument forma persistida en la colección users. Los nombres de campo
// coinciden con los documentos existentes (fullName, supervisor_id).
type userDocument struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	FullName     string              `bson:"fullName"`
	Email        string              `bson:"email"`
	Password     string              `bson:"password,omitempty"`
	Code         string              `bson:"code"`
	Role         string              `bson:"role"`
	SupervisorID *primitive.ObjectID `bson:"supervisor_id"`
	CreatedAt    time.Time           `bson:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt"`
}

func (d *userDocument) toEntity() *entity.User {
	u := &entity.User{
		ID:           d.ID.Hex(),
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.Password,
		Code:         d.Code,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.SupervisorID != nil {
		s := d.SupervisorID.Hex()
		u.SupervisorID = &s
	}
	return u
}

func fromEntity(u *entity.User) (*userDocument, error) {
	supervisor, err := parseSupervisor(u.SupervisorID)
	if err != nil {
		return nil, err
	}
	return &userDocument{
		FullName:     u.FullName,
		Email:        u.Email,
		Password:     u.PasswordHash,
		Code:         u.Code,
		Role:         u.Role,
		SupervisorID: supervisor,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

// parseSupervisor convierte el id a ObjectID; nil se conserva como null.
func parseSupervisor(id *string) (*primitive.ObjectID, error) {
	if id == nil {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(*id)
	if err != nil {
		return nil, &domain.FieldError{Field: "supervisor_id", Reason: "must be a valid id"}
	}
	return &oid, nil
}
