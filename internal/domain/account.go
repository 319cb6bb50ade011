package domain

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Seller      string    `json:"seller"`
	ImageData   *string   `json:"image_data,omitempty"`
	GameType    string    `json:"game_type"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	DefaultSeller   = "Admin"
	DefaultGameType = "Fortnite"
)
