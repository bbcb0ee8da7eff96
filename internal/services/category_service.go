package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
	"github.com/Yns1000/haybank/internal/store"
)

// categoryService handles the shared category list.
type categoryService struct {
	store   *store.Gateway
	checker *ledger.Checker
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(gw *store.Gateway, checker *ledger.Checker) CategoryServicer {
	return &categoryService{store: gw, checker: checker}
}

func requireName(name string) error {
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrMissingFields, "Missing required fields: name")
	}
	return nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: strings.TrimSpace(name)}

	err := ledger.Run(ctx,
		ledger.Check(func() error { return requireName(category.Name) }),
		func(ctx context.Context) error { return s.checker.Category(ctx, 0, category.Name) },
		func(ctx context.Context) error {
			_, err := s.store.Insert(ctx, category)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns every category ordered by name.
func (s *categoryService) ListCategories(ctx context.Context, page pagination.PageRequest) (*pagination.Page[models.Category], error) {
	result, err := pagination.Find[models.Category](s.store.DB(ctx).Model(&models.Category{}), page, "name")
	if err != nil {
		return nil, store.Translate(err)
	}
	return result, nil
}

// GetCategory retrieves a category with its sub-categories.
func (s *categoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.store.DB(ctx).Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("name")
	}).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, store.Translate(err)
	}
	return &category, nil
}

// UpdateCategory renames a category. Renaming to the current name yields
// ErrNotModified.
func (s *categoryService) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	var category models.Category
	name = strings.TrimSpace(name)

	var changes map[string]interface{}
	err := ledger.Run(ctx,
		ledger.Check(func() error { return requireName(name) }),
		func(ctx context.Context) error {
			return s.store.First(ctx, &category, id, apperrors.ErrCategoryNotFound)
		},
		ledger.Check(func() (err error) {
			changes, err = ledger.Changes(
				map[string]interface{}{"name": category.Name},
				map[string]interface{}{"name": name},
			)
			return err
		}),
		func(ctx context.Context) error { return s.checker.Category(ctx, id, name) },
		func(ctx context.Context) error {
			_, err := s.store.Update(ctx, &models.Category{}, id, changes)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return s.GetCategory(ctx, id)
}

// DeleteCategory removes a category that has no sub-category and no reference.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	var category models.Category
	return ledger.Run(ctx,
		func(ctx context.Context) error {
			return s.store.First(ctx, &category, id, apperrors.ErrCategoryNotFound)
		},
		func(ctx context.Context) error {
			return refuseIfUsed(ctx, s.store, apperrors.ErrCategoryHasChildren,
				usage{&models.SubCategory{}, "category_id = ?", []interface{}{id}})
		},
		func(ctx context.Context) error {
			return refuseIfUsed(ctx, s.store, apperrors.ErrCategoryInUse,
				usage{&models.Movement{}, "category_id = ?", []interface{}{id}},
				usage{&models.Transfer{}, "category_id = ?", []interface{}{id}},
			)
		},
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, &models.Category{}, id)
			return err
		},
	)
}
