package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un producto en el catálogo
type Product struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Description   string             `json:"description" bson:"description"`
	Price         float64            `json:"price" bson:"price"`
	Stock         int                `json:"stock" bson:"stock"`
	Photo         string             `json:"photo" bson:"photo"`
	PhotoPublicID string             `json:"photoPublicId" bson:"photoPublicId"`
	Featured      bool               `json:"featured" bson:"featured"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductInput son los campos requeridos para crear un producto.
// Price y Stock son punteros para distinguir "ausente" de cero.
type ProductInput struct {
	Name        string   `json:"name" form:"name" binding:"required"`
	Category    string   `json:"category" form:"category" binding:"required"`
	Description string   `json:"description" form:"description" binding:"required"`
	Price       *float64 `json:"price" form:"price" binding:"required,gte=0"`
	Stock       *int     `json:"stock" form:"stock" binding:"required,gte=0"`
}

// ProductUpdate representa los campos actualizables de un producto.
// Un campo nil no se modifica.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty" form:"name"`
	Category    *string  `json:"category,omitempty" form:"category"`
	Description *string  `json:"description,omitempty" form:"description"`
	Price       *float64 `json:"price,omitempty" form:"price" binding:"omitempty,gte=0"`
	Stock       *int     `json:"stock,omitempty" form:"stock" binding:"omitempty,gte=0"`
}

// Empty indica si no se envió ningún campo
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Category == nil && u.Description == nil &&
		u.Price == nil && u.Stock == nil
}

// Apply copia los campos enviados sobre p. La categoría se guarda en minúsculas
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = NormalizeCategory(*u.Category)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
}

// SetPhoto reemplaza la imagen y su public id juntos
func (p *Product) SetPhoto(url, publicID string) {
	p.Photo = url
	p.PhotoPublicID = publicID
}
