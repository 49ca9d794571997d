package campaigns

import (
	"context"
	"fmt"
	"time"

	"github.com/fundhub/crowdfunding/internal/fraud"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles campaign data access
type Repository struct {
	db *pgxpool.Pool
}

// The repository backs both the fraud analyzers' read-only store view and
// the handler's campaign loading.
var (
	_ fraud.CampaignStore  = (*Repository)(nil)
	_ fraud.CampaignGetter = (*Repository)(nil)
)

// NewRepository creates a new campaign repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a campaign by id
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	query := `
		SELECT id, creator_id, title, description, story, category,
		       goal_amount, raised_amount, image_url, additional_images,
		       videos, status, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`

	var c Campaign
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.CreatorID,
		&c.Title,
		&c.Description,
		&c.Story,
		&c.Category,
		&c.GoalAmount,
		&c.RaisedAmount,
		&c.ImageURL,
		&c.AdditionalImages,
		&c.Videos,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", id, err)
	}

	return &c, nil
}

// GetSnapshot loads a campaign and converts it to an analysis snapshot
func (r *Repository) GetSnapshot(ctx context.Context, id uuid.UUID) (*fraud.CampaignSnapshot, error) {
	campaign, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return campaign.Snapshot(), nil
}

// ListByCreatorSince returns a creator's campaigns created at or after since,
// newest first.
func (r *Repository) ListByCreatorSince(ctx context.Context, creatorID uuid.UUID, since time.Time) ([]fraud.CreatorCampaign, error) {
	query := `
		SELECT id, status, goal_amount, created_at
		FROM campaigns
		WHERE creator_id = $1
		  AND created_at >= $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, creatorID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list creator campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]fraud.CreatorCampaign, 0)
	for rows.Next() {
		var c fraud.CreatorCampaign
		if err := rows.Scan(&c.ID, &c.Status, &c.GoalAmount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan creator campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}

// ListByCategorySince returns same-category campaigns by other creators
// created at or after since.
func (r *Repository) ListByCategorySince(ctx context.Context, category string, excludeCreatorID uuid.UUID, since time.Time) ([]fraud.CategoryCampaign, error) {
	query := `
		SELECT id, title, description, goal_amount, created_at
		FROM campaigns
		WHERE category = $1
		  AND creator_id != $2
		  AND created_at >= $3
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, category, excludeCreatorID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list category campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]fraud.CategoryCampaign, 0)
	for rows.Next() {
		var c fraud.CategoryCampaign
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.GoalAmount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}
