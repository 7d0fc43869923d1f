package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/solobill/solobill/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, page pagination.Pagination) ([]*Client, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
