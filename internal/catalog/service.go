package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/stkrfx/digitaloffices-1/internal/db"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type CreateRequest struct {
	Owner       provider.Owner
	Title       string
	Description *string
	Price       decimal.Decimal
	DurationMin int
}

type UpdateRequest struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	DurationMin *int
	IsActive    *bool
}

// Catalog manages the services providers sell.
type Catalog interface {
	Create(ctx context.Context, req CreateRequest) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	// GetBookable returns ErrNotFound for missing and inactive services alike.
	GetBookable(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter Filter) ([]*Service, int, error)
	Update(ctx context.Context, id string, actor provider.Owner, req UpdateRequest) (*Service, error)
	// Delete reports whether the service was deactivated instead of removed.
	Delete(ctx context.Context, id string, actor provider.Owner) (bool, error)
}

type catalog struct {
	repo Repository
	tx   db.Transactor
	log  logrus.FieldLogger
}

func NewCatalog(repo Repository, tx db.Transactor, log logrus.FieldLogger) Catalog {
	return &catalog{repo: repo, tx: tx, log: log}
}

func (c *catalog) Create(ctx context.Context, req CreateRequest) (*Service, error) {
	if req.Owner.IsZero() {
		return nil, ErrInvalidOwner
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}
	if err := validateDuration(req.DurationMin); err != nil {
		return nil, err
	}

	svc := &Service{
		Title:       title,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		IsActive:    true,
		Owner:       req.Owner,
	}
	if err := c.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (c *catalog) GetByID(ctx context.Context, id string) (*Service, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *catalog) GetBookable(ctx context.Context, id string) (*Service, error) {
	svc, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrNotFound
	}
	return svc, nil
}

func (c *catalog) List(ctx context.Context, filter Filter) ([]*Service, int, error) {
	return c.repo.List(ctx, filter)
}

func (c *catalog) Update(ctx context.Context, id string, actor provider.Owner, req UpdateRequest) (*Service, error) {
	if req.Title == nil && req.Description == nil && req.Price == nil && req.DurationMin == nil && req.IsActive == nil {
		return nil, ErrNothingToUpdate
	}

	var svc *Service
	err := c.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		svc, err = c.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if svc.Owner != actor {
			return ErrNotOwner
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return ErrTitleRequired
			}
			svc.Title = title
		}
		if req.Description != nil {
			svc.Description = req.Description
		}
		if req.Price != nil {
			if err := validatePrice(*req.Price); err != nil {
				return err
			}
			svc.Price = *req.Price
		}
		if req.DurationMin != nil {
			if err := validateDuration(*req.DurationMin); err != nil {
				return err
			}
			svc.DurationMin = *req.DurationMin
		}
		if req.IsActive != nil {
			svc.IsActive = *req.IsActive
		}
		return c.repo.Update(ctx, svc)
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (c *catalog) Delete(ctx context.Context, id string, actor provider.Owner) (bool, error) {
	soft := false
	err := c.tx.WithinTx(ctx, func(ctx context.Context) error {
		svc, err := c.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if svc.Owner != actor {
			return ErrNotOwner
		}

		n, err := c.repo.CountBookings(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			soft = true
			return c.repo.Deactivate(ctx, id)
		}
		return c.repo.Delete(ctx, id)
	})
	if err != nil {
		return false, err
	}

	c.log.WithFields(logrus.Fields{
		"service_id": id,
		"owner":      actor.String(),
		"soft":       soft,
	}).Info("service deleted")
	return soft, nil
}
