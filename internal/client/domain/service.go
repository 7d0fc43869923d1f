package domain

import (
	"context"
	"errors"

	"github.com/solobill/solobill/pkg/db/pagination"
)

type ClientForm struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Company       string `json:"company"`
	ContactPerson string `json:"contact_person"`
}

type ListClientRequest struct {
	PageToken string
	PageSize  int
}

type ListClientResponse struct {
	pagination.PageInfo
	Clients []Client `json:"clients"`
}

type Service interface {
	Create(context.Context, ClientForm) (Client, error)
	Update(ctx context.Context, id string, form ClientForm) (Client, error)
	List(context.Context, ListClientRequest) (ListClientResponse, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
	ErrForbidden   = errors.New("forbidden")
)
