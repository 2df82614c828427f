package userrepo

import (
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role              int       `gorm:"type:smallint;not null"`
	DisplayName       string    `gorm:"type:varchar(255);not null"`
	Email             string    `gorm:"type:varchar(255)"`
	Address           string    `gorm:"type:varchar(512)"`
	Latitude          *float64  `gorm:"type:double precision"`
	Longitude         *float64  `gorm:"type:double precision"`
	LocationUpdatedAt *time.Time
	CreatedAt         time.Time `gorm:"not null;autoCreateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:          u.ID().Bytes(),
		Role:        int(u.Role()),
		DisplayName: u.DisplayName(),
		Email:       u.Email(),
		Address:     u.Address(),
		CreatedAt:   u.CreatedAt().UTC(),
	}
	if p := u.Location(); p != nil {
		lat, lng := p.Latitude(), p.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lng
	}
	if at := u.LocationUpdatedAt(); at != nil {
		utc := at.UTC()
		dto.LocationUpdatedAt = &utc
	}
	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPointPtr(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, user.Role(dto.Role), dto.DisplayName, dto.Email, dto.Address,
		location, dto.LocationUpdatedAt, dto.CreatedAt)
}
