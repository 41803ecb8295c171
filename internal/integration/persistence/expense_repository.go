// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create inserts the expense after verifying category ownership inside the
// same transaction, so a concurrent category delete cannot leave a dangling
// reference.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) (*entity.ExpenseWithCategory, error) {
	expenseModel := model.ExpenseFromEntity(expense)
	var categoryModel model.CategoryModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", expense.CategoryID, expense.UserID).
			First(&categoryModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrCategoryNotOwned
			}
			return err
		}
		return tx.Create(expenseModel).Error
	})
	if err != nil {
		return nil, err
	}

	expenseModel.Category = &categoryModel
	return expenseModel.ToEntityWithCategory(), nil
}

// FindByIDAndUser retrieves an expense with its category, scoped to the user.
func (r *expenseRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.ExpenseWithCategory, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntityWithCategory(), nil
}

// FindByFilter retrieves a page of expenses with categories joined, ordered
// by expense date descending with creation time as a stable tiebreak.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter, pagination adapter.ExpensePagination) (*entity.ExpenseListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.ExpenseModel{})

	// The user scope is mandatory; remaining predicates are AND-combined.
	query = query.Where("user_id = ?", filter.UserID)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.StartDate != nil {
		query = query.Where("expense_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("expense_date <= ?", *filter.EndDate)
	}

	// Total count ignoring pagination
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	var expenseModels []model.ExpenseModel
	result := query.
		Preload("Category").
		Order("expense_date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.ExpenseWithCategory, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntityWithCategory()
	}

	return &entity.ExpenseListResult{
		Expenses:   expenses,
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update saves the expense after re-verifying category ownership inside the
// same transaction.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) (*entity.ExpenseWithCategory, error) {
	expenseModel := model.ExpenseFromEntity(expense)
	var categoryModel model.CategoryModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", expense.CategoryID, expense.UserID).
			First(&categoryModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrCategoryNotOwned
			}
			return err
		}
		return tx.Save(expenseModel).Error
	})
	if err != nil {
		return nil, err
	}

	expenseModel.Category = &categoryModel
	return expenseModel.ToEntityWithCategory(), nil
}

// DeleteByIDAndUser removes an expense scoped to the owning user.
func (r *expenseRepository) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}
