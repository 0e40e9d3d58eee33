package foods

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFoodNotFound = errors.New("food not found")

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// Search matches q against name and brand, verified foods first.
func (s *FoodService) Search(ctx context.Context, q string, limit, offset int) ([]Food, int64, error) {
	query := s.db.WithContext(ctx).Model(&Food{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var foods []Food
	err := query.Order("verified DESC, name ASC").Limit(limit).Offset(offset).Find(&foods).Error
	return foods, total, err
}

func (s *FoodService) Get(ctx context.Context, id uuid.UUID) (*Food, error) {
	var food Food
	if err := s.db.WithContext(ctx).First(&food, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) Create(ctx context.Context, req FoodRequest) (*Food, error) {
	food := Food{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Brand:    strings.TrimSpace(req.Brand),
		Calories: *req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Verified: req.Verified,
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) Update(ctx context.Context, id uuid.UUID, req FoodRequest) (*Food, error) {
	food, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(food).Updates(map[string]interface{}{
		"name":     strings.TrimSpace(req.Name),
		"brand":    strings.TrimSpace(req.Brand),
		"calories": *req.Calories,
		"protein":  req.Protein,
		"carbs":    req.Carbs,
		"fat":      req.Fat,
		"verified": req.Verified,
	}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *FoodService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&Food{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFoodNotFound
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
