package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campusfolio/ascent-api/internal/models"
)

// PortfolioRepository defines data operations for generated portfolios.
// Portfolios are append-only; there is no update or delete.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *models.Portfolio) error
	ListForStudent(ctx context.Context, studentID uint) ([]models.Portfolio, error)
}

type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository instantiates the repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	return r.db.WithContext(ctx).Create(portfolio).Error
}

func (r *portfolioRepository) ListForStudent(ctx context.Context, studentID uint) ([]models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&portfolios).Error; err != nil {
		return nil, err
	}

	return portfolios, nil
}
