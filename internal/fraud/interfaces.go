package fraud

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CampaignStore is the read-only view of the campaign store the analyzers
// consume. No writes ever originate from this package.
type CampaignStore interface {
	// ListByCreatorSince returns the creator's campaigns created at or after
	// since, newest first.
	ListByCreatorSince(ctx context.Context, creatorID uuid.UUID, since time.Time) ([]CreatorCampaign, error)

	// ListByCategorySince returns campaigns in the given category by other
	// creators created at or after since.
	ListByCategorySince(ctx context.Context, category string, excludeCreatorID uuid.UUID, since time.Time) ([]CategoryCampaign, error)
}

// MediaFetcher retrieves raw image bytes for a campaign image reference.
// Implementations must support JPEG, PNG and WEBP payloads.
type MediaFetcher interface {
	FetchImage(ctx context.Context, ref string) ([]byte, error)
}
