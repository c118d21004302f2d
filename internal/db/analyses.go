package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SaveAnalysis inserts an analysis row and fills in its ID and CreatedAt.
func (db *DB) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error {
	emails, err := marshalNullable(rec.EmailsFound)
	if err != nil {
		return fmt.Errorf("failed to encode emails: %w", err)
	}
	var socials []byte
	if len(rec.SocialLinks) > 0 {
		if socials, err = json.Marshal(rec.SocialLinks); err != nil {
			return fmt.Errorf("failed to encode social links: %w", err)
		}
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO lead_analyses (place_id, pagespeed_performance, pagespeed_seo,
			pagespeed_accessibility, pagespeed_best_practices, emails_found, social_links,
			site_copyright_year, review_summary, ai_pitch, model)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		rec.PlaceID, rec.PageSpeedPerformance, rec.PageSpeedSEO,
		rec.PageSpeedAccessibility, rec.PageSpeedBestPractices, emails, socials,
		rec.SiteCopyrightYear, rec.ReviewSummary, rec.AIPitch, rec.Model,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetLatestAnalysis returns the most recent analysis for a place, or nil if none exists.
func (db *DB) GetLatestAnalysis(ctx context.Context, placeID string) (*AnalysisRecord, error) {
	var rec AnalysisRecord
	var emails, socials []byte
	var summary, pitch, model *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, place_id, pagespeed_performance, pagespeed_seo, pagespeed_accessibility,
			pagespeed_best_practices, emails_found, social_links, site_copyright_year,
			review_summary, ai_pitch, model, created_at
		 FROM lead_analyses WHERE place_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		placeID,
	).Scan(&rec.ID, &rec.PlaceID, &rec.PageSpeedPerformance, &rec.PageSpeedSEO, &rec.PageSpeedAccessibility,
		&rec.PageSpeedBestPractices, &emails, &socials, &rec.SiteCopyrightYear,
		&summary, &pitch, &model, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if rec.EmailsFound, err = unmarshalStrings(emails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	if len(socials) > 0 {
		if err := json.Unmarshal(socials, &rec.SocialLinks); err != nil {
			return nil, fmt.Errorf("failed to decode social links: %w", err)
		}
	}
	rec.ReviewSummary = deref(summary)
	rec.AIPitch = deref(pitch)
	rec.Model = deref(model)
	return &rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
