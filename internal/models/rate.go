package models

import "time"

// Rate представляет запись тарифа в хранилище сервера.
// IDOp задается при создании и не меняется, tasa и email мутабельны.
type Rate struct {
	IDOp      int       `json:"idOp"`
	Tasa      float64   `json:"tasa"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
