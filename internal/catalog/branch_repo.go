package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// BranchRepository exposes pickup-branch persistence operations.
type BranchRepository struct {
	db *gorm.DB
}

// NewBranchRepository constructs a branch repo bound to the provided GORM DB.
func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// Create inserts a branch.
func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) (*models.Branch, error) {
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

// FindByID loads a branch by ID.
func (r *BranchRepository) FindByID(ctx context.Context, id int64) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "branch not found")
		}
		return nil, err
	}
	return &branch, nil
}

// ListAll returns every branch in insertion order.
func (r *BranchRepository) ListAll(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// UpdateColumns applies a partial column update to a branch.
func (r *BranchRepository) UpdateColumns(ctx context.Context, id int64, values map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Branch{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
	}
	return nil
}

// Delete removes a branch. Orders referencing it keep a NULL branch_id.
func (r *BranchRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Branch{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
	}
	return nil
}
