package domain

import (
	"errors"
	"strings"
	"time"
)

type Unit string

const (
	UnitKg     Unit = "kg"
	UnitPiece  Unit = "piece"
	UnitBundle Unit = "bundle"
	UnitPack   Unit = "pack"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitPiece, UnitBundle, UnitPack:
		return true
	}
	return false
}

var (
	ErrInvalidName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must not be negative")
	ErrInvalidStock = errors.New("stock must not be negative")
	ErrInvalidUnit  = errors.New("unit must be one of kg, piece, bundle, pack")
)

type InventoryItem struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64   `bson:"price" json:"price"`
	Unit        Unit      `bson:"unit" json:"unit"`
	Stock       int       `bson:"stock" json:"stock"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	IsAvailable bool      `bson:"is_available" json:"is_available"`
	CreatedBy   string    `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Normalize trims text fields and fills the unit default.
func (i *InventoryItem) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Category = strings.TrimSpace(i.Category)
	if i.Unit == "" {
		i.Unit = UnitKg
	}
}

func (i *InventoryItem) Validate() error {
	if i.Name == "" {
		return ErrInvalidName
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	if i.Stock < 0 {
		return ErrInvalidStock
	}
	if !i.Unit.Valid() {
		return ErrInvalidUnit
	}
	return nil
}

// InventoryPatch carries the admin-editable fields; nil means unchanged.
type InventoryPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Unit        *Unit    `json:"unit,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

// Apply copies the set fields of p onto item.
func (p InventoryPatch) Apply(item *InventoryItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Stock != nil {
		item.Stock = *p.Stock
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.IsAvailable != nil {
		item.IsAvailable = *p.IsAvailable
	}
}

// Product is the public projection of an inventory item.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Unit  Unit    `json:"unit"`
	Image string  `json:"image,omitempty"`
}

func (i InventoryItem) Product() Product {
	return Product{ID: i.ID, Name: i.Name, Price: i.Price, Unit: i.Unit, Image: i.Image}
}
