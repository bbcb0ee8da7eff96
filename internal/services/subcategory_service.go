package services

import (
	"context"
	"strings"

	apperrors "github.com/Yns1000/haybank/internal/errors"
	"github.com/Yns1000/haybank/internal/ledger"
	"github.com/Yns1000/haybank/internal/models"
	"github.com/Yns1000/haybank/internal/pagination"
	"github.com/Yns1000/haybank/internal/store"
)

// subCategoryService handles sub-categories and their parent links.
type subCategoryService struct {
	store   *store.Gateway
	checker *ledger.Checker
	refs    references
}

// NewSubCategoryService creates a new SubCategoryServicer.
func NewSubCategoryService(gw *store.Gateway, checker *ledger.Checker) SubCategoryServicer {
	return &subCategoryService{store: gw, checker: checker, refs: references{store: gw}}
}

// CreateSubCategory creates a sub-category under an existing category.
func (s *subCategoryService) CreateSubCategory(ctx context.Context, name string, categoryID uint) (*models.SubCategory, error) {
	sub := &models.SubCategory{Name: strings.TrimSpace(name), CategoryID: categoryID}

	err := ledger.Run(ctx,
		ledger.Check(func() error { return requireSubCategoryFields(sub) }),
		s.refs.category(categoryID),
		func(ctx context.Context) error { return s.checker.SubCategory(ctx, 0, sub.Name, sub.CategoryID) },
		func(ctx context.Context) error {
			_, err := s.store.Insert(ctx, sub)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func requireSubCategoryFields(sub *models.SubCategory) error {
	var missing []string
	if sub.Name == "" {
		missing = append(missing, "name")
	}
	if sub.CategoryID == 0 {
		missing = append(missing, "categoryId")
	}
	if len(missing) > 0 {
		return apperrors.WithMessage(apperrors.ErrMissingFields, "Missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

// ListSubCategories lists sub-categories, optionally of one category.
func (s *subCategoryService) ListSubCategories(ctx context.Context, categoryID *uint, page pagination.PageRequest) (*pagination.Page[models.SubCategory], error) {
	query := s.store.DB(ctx).Model(&models.SubCategory{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	result, err := pagination.Find[models.SubCategory](query, page, "name")
	if err != nil {
		return nil, store.Translate(err)
	}
	return result, nil
}

// GetSubCategory retrieves a sub-category by ID.
func (s *subCategoryService) GetSubCategory(ctx context.Context, id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	if err := s.store.First(ctx, &sub, id, apperrors.ErrSubCategoryNotFound); err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubCategory renames or re-parents a sub-category. A sub-category
// used by movements keeps its parent.
func (s *subCategoryService) UpdateSubCategory(ctx context.Context, id uint, fields SubCategoryUpdate) (*models.SubCategory, error) {
	current, err := s.GetSubCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	proposed := *current
	if fields.Name != nil {
		proposed.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.CategoryID != nil {
		proposed.CategoryID = *fields.CategoryID
	}

	var changes map[string]interface{}
	err = ledger.Run(ctx,
		ledger.Check(func() error { return requireSubCategoryFields(&proposed) }),
		ledger.Check(func() (err error) {
			changes, err = ledger.Changes(
				map[string]interface{}{"name": current.Name, "category_id": current.CategoryID},
				map[string]interface{}{"name": proposed.Name, "category_id": proposed.CategoryID},
			)
			return err
		}),
		func(ctx context.Context) error {
			if proposed.CategoryID == current.CategoryID {
				return nil
			}
			return ledger.Run(ctx,
				s.refs.category(proposed.CategoryID),
				func(ctx context.Context) error {
					return refuseIfUsed(ctx, s.store, apperrors.ErrSubCategoryInUse,
						usage{&models.Movement{}, "sub_category_id = ?", []interface{}{id}})
				},
			)
		},
		func(ctx context.Context) error {
			return s.checker.SubCategory(ctx, id, proposed.Name, proposed.CategoryID)
		},
		func(ctx context.Context) error {
			_, err := s.store.Update(ctx, &models.SubCategory{}, id, changes)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return s.GetSubCategory(ctx, id)
}

// DeleteSubCategory removes a sub-category no movement uses.
func (s *subCategoryService) DeleteSubCategory(ctx context.Context, id uint) error {
	return ledger.Run(ctx,
		func(ctx context.Context) error {
			_, err := s.GetSubCategory(ctx, id)
			return err
		},
		func(ctx context.Context) error {
			return refuseIfUsed(ctx, s.store, apperrors.ErrSubCategoryInUse,
				usage{&models.Movement{}, "sub_category_id = ?", []interface{}{id}})
		},
		func(ctx context.Context) error {
			_, err := s.store.Delete(ctx, &models.SubCategory{}, id)
			return err
		},
	)
}
