package services

import (
	"context"
	"time"

	"assettrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService aggregates summary numbers for the dashboard.
// Queries run against the database directly; these are read-only
// aggregates with no business rules of their own.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardSummary is the dashboard payload
type DashboardSummary struct {
	TotalProducts     int64                       `json:"total_products"`
	TotalEmployees    int64                       `json:"total_employees"`
	ActiveAssignments int64                       `json:"active_assignments"`
	OverdueReturns    int64                       `json:"overdue_returns"`
	WeeklyTrend       []DailyCount                `json:"weekly_trend"`
	RecentAssignments []*models.ProductAssignment `json:"recent_assignments"`
	CategoryStats     []CategoryStat              `json:"category_stats"`
}

// DailyCount is one day of the weekly assignment trend
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// CategoryStat is per-category product and assignment totals
type CategoryStat struct {
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        int64  `json:"total"`
	Assigned     int64  `json:"assigned"`
}

// GetSummary builds the full dashboard summary
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Product{}).Count(&summary.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Employee{}).Count(&summary.TotalEmployees).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ProductAssignment{}).
		Where("returned_at IS NULL").
		Count(&summary.ActiveAssignments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.ProductAssignment{}).
		Where("returned_at IS NULL AND expected_return_at IS NOT NULL AND expected_return_at < ?", time.Now()).
		Count(&summary.OverdueReturns).Error; err != nil {
		return nil, err
	}

	trend, err := s.weeklyTrend(ctx)
	if err != nil {
		return nil, err
	}
	summary.WeeklyTrend = trend

	recent, err := s.recentAssignments(ctx)
	if err != nil {
		return nil, err
	}
	summary.RecentAssignments = recent

	stats, err := s.categoryStats(ctx)
	if err != nil {
		return nil, err
	}
	summary.CategoryStats = stats

	return summary, nil
}

// weeklyTrend counts new assignments per day for the current week,
// Sunday through Saturday. Days with no assignments appear as zero.
func (s *DashboardService) weeklyTrend(ctx context.Context) ([]DailyCount, error) {
	now := time.Now()
	weekStart := now.AddDate(0, 0, -int(now.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, now.Location())
	weekEnd := weekStart.AddDate(0, 0, 7)

	type row struct {
		Day   string
		Count int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.ProductAssignment{}).
		Select("DATE(assigned_at) AS day, COUNT(*) AS count").
		Where("assigned_at >= ? AND assigned_at < ?", weekStart, weekEnd).
		Group("DATE(assigned_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Day] = r.Count
	}

	trend := make([]DailyCount, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		trend = append(trend, DailyCount{Date: day, Count: counts[day]})
	}
	return trend, nil
}

func (s *DashboardService) recentAssignments(ctx context.Context) ([]*models.ProductAssignment, error) {
	var assignments []*models.ProductAssignment
	err := s.db.WithContext(ctx).
		Preload("Product").
		Preload("Employee").
		Where("returned_at IS NULL").
		Order("assigned_at DESC").
		Limit(5).
		Find(&assignments).Error
	return assignments, err
}

func (s *DashboardService) categoryStats(ctx context.Context) ([]CategoryStat, error) {
	var stats []CategoryStat
	err := s.db.WithContext(ctx).Model(&models.Category{}).
		Select(`categories.id AS category_id,
			categories.name AS category_name,
			COUNT(DISTINCT products.id) AS total,
			COUNT(DISTINCT CASE WHEN product_assignments.returned_at IS NULL AND product_assignments.id IS NOT NULL THEN products.id END) AS assigned`).
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.deleted_at IS NULL").
		Joins("LEFT JOIN product_assignments ON product_assignments.product_id = products.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&stats).Error
	return stats, err
}
