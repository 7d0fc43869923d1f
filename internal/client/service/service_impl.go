package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solobill/solobill/internal/client/domain"
	"github.com/solobill/solobill/internal/clock"
	"github.com/solobill/solobill/internal/userctx"
	"github.com/solobill/solobill/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, form domain.ClientForm) (domain.Client, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	client := domain.Client{
		ID:            s.genID.Generate(),
		UserID:        userID,
		Name:          name,
		Email:         strings.TrimSpace(form.Email),
		Phone:         strings.TrimSpace(form.Phone),
		Address:       strings.TrimSpace(form.Address),
		Company:       strings.TrimSpace(form.Company),
		ContactPerson: strings.TrimSpace(form.ContactPerson),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		return domain.Client{}, err
	}

	return client, nil
}

func (s *Service) Update(ctx context.Context, id string, form domain.ClientForm) (domain.Client, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidUser
	}

	clientID, err := s.parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if existing == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	if existing.UserID != userID {
		return domain.Client{}, domain.ErrForbidden
	}

	existing.Name = name
	existing.Email = strings.TrimSpace(form.Email)
	existing.Phone = strings.TrimSpace(form.Phone)
	existing.Address = strings.TrimSpace(form.Address)
	existing.Company = strings.TrimSpace(form.Company)
	existing.ContactPerson = strings.TrimSpace(form.ContactPerson)
	existing.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return domain.Client{}, err
	}

	return *existing, nil
}

func (s *Service) List(ctx context.Context, req domain.ListClientRequest) (domain.ListClientResponse, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return domain.ListClientResponse{}, domain.ErrInvalidUser
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, userID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListClientResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(client *domain.Client) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        client.ID.String(),
			CreatedAt: client.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	clients := make([]domain.Client, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		clients = append(clients, *item)
	}

	resp := domain.ListClientResponse{Clients: clients}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return domain.Client{}, domain.ErrInvalidUser
	}

	clientID, err := s.parseID(id)
	if err != nil {
		return domain.Client{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	if item == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	if item.UserID != userID {
		return domain.Client{}, domain.ErrForbidden
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := userctx.UserIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidUser
	}

	clientID, err := s.parseID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, clientID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if existing.UserID != userID {
		return domain.ErrForbidden
	}

	// Deletion is unconditional; invoices referencing the client keep
	// their client id.
	return s.repo.Delete(ctx, s.db, clientID)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
