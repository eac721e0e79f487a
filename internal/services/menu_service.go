package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"restaurant/internal/apperr"
	"restaurant/internal/config"
	"restaurant/internal/logging"
	"restaurant/internal/models"
)

type MenuStore interface {
	ListMenu(ctx context.Context) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
}

type MenuService struct {
	store  MenuStore
	admins config.EmailSet
	log    logrus.FieldLogger
}

func NewMenuService(st MenuStore, admins config.EmailSet, log logrus.FieldLogger) *MenuService {
	return &MenuService{store: st, admins: admins, log: logging.Component(log, "menu")}
}

func (s *MenuService) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.store.ListMenu(ctx)
	if err != nil {
		return nil, apperr.Internal("could not load menu", err)
	}
	return items, nil
}

// CreateMenuItem adds a dish. Prices are kept to cents.
func (s *MenuService) CreateMenuItem(ctx context.Context, ident models.Identity, name string, price decimal.Decimal) (models.MenuItem, error) {
	if !ident.Authenticated() {
		return models.MenuItem{}, apperr.Unauthenticated("Login required")
	}
	if !IsAdmin(s.admins, ident) {
		return models.MenuItem{}, apperr.Forbidden("Admin only")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.MenuItem{}, apperr.InvalidInput("name is required")
	}
	price = price.Round(2)
	if price.Sign() <= 0 {
		return models.MenuItem{}, apperr.InvalidInput("price must be greater than 0")
	}

	item := models.MenuItem{Name: name, Price: price}
	if err := s.store.CreateMenuItem(ctx, &item); err != nil {
		return models.MenuItem{}, apperr.Internal("could not create menu item", err)
	}

	s.log.WithFields(logrus.Fields{"menu_id": item.ID, "actor": ident.Email}).Info("menu item created")
	return item, nil
}
