package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const leadColumns = `id, place_id, name, primary_type, formatted_address, phone, website_url,
	rating::float8, review_count, lead_score, photos_count, has_hours, business_status,
	location_lat::float8, location_lng::float8, raw_places_data, emails, notes,
	emails_scanned_at, created_at, updated_at`

func scanLead(row pgx.Row) (*SavedLead, error) {
	var l SavedLead
	var rawEmails []byte
	err := row.Scan(
		&l.ID, &l.PlaceID, &l.Name, &l.PrimaryType, &l.FormattedAddress, &l.Phone, &l.WebsiteURL,
		&l.Rating, &l.ReviewCount, &l.LeadScore, &l.PhotosCount, &l.HasHours, &l.BusinessStatus,
		&l.LocationLat, &l.LocationLng, &l.RawPlacesData, &rawEmails, &l.Notes,
		&l.EmailsScannedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if l.Emails, err = unmarshalStrings(rawEmails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	return &l, nil
}

// -----------------------------------------------------------------------------
// Saved Lead Methods
// -----------------------------------------------------------------------------

// SaveLead inserts a new lead. Returns ErrLeadExists if the place is already saved.
func (db *DB) SaveLead(ctx context.Context, in NewLead) (*SavedLead, error) {
	emails, err := marshalNullable(in.Emails)
	if err != nil {
		return nil, fmt.Errorf("failed to encode emails: %w", err)
	}
	var scannedAt *time.Time
	if in.Emails != nil {
		now := time.Now().UTC()
		scannedAt = &now
	}
	var raw []byte
	if len(in.RawPlacesData) > 0 {
		raw = in.RawPlacesData
	}

	lead, err := scanLead(db.pool.QueryRow(ctx,
		`INSERT INTO saved_leads (place_id, name, primary_type, formatted_address, phone, website_url,
			rating, review_count, lead_score, photos_count, has_hours, business_status,
			location_lat, location_lng, raw_places_data, emails, emails_scanned_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 ON CONFLICT (place_id) DO NOTHING
		 RETURNING `+leadColumns,
		in.PlaceID, in.Name, in.PrimaryType, in.FormattedAddress, in.Phone, in.WebsiteURL,
		in.Rating, in.ReviewCount, in.LeadScore, in.PhotosCount, in.HasHours, in.BusinessStatus,
		in.LocationLat, in.LocationLng, raw, emails, scannedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadExists
		}
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}
	return lead, nil
}

// GetLead retrieves a saved lead by place ID
func (db *DB) GetLead(ctx context.Context, placeID string) (*SavedLead, error) {
	lead, err := scanLead(db.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM saved_leads WHERE place_id = $1`,
		placeID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// ListLeads returns all saved leads, newest first
func (db *DB) ListLeads(ctx context.Context) ([]SavedLead, error) {
	return db.queryLeads(ctx, `SELECT `+leadColumns+` FROM saved_leads ORDER BY created_at DESC`)
}

// ListLeadsWithWebsite returns saved leads that have a website, oldest scan first.
// Leads that were never scanned come before all others.
func (db *DB) ListLeadsWithWebsite(ctx context.Context, limit int) ([]SavedLead, error) {
	return db.queryLeads(ctx,
		`SELECT `+leadColumns+` FROM saved_leads
		 WHERE website_url IS NOT NULL AND website_url <> ''
		 ORDER BY emails_scanned_at ASC NULLS FIRST, created_at ASC
		 LIMIT $1`,
		limit,
	)
}

func (db *DB) queryLeads(ctx context.Context, query string, args ...any) ([]SavedLead, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []SavedLead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// DeleteLead removes a saved lead. Reports whether a row was deleted.
func (db *DB) DeleteLead(ctx context.Context, placeID string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM saved_leads WHERE place_id = $1`, placeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete lead: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteLeads removes several saved leads and returns how many were deleted.
func (db *DB) DeleteLeads(ctx context.Context, placeIDs []string) (int64, error) {
	if len(placeIDs) == 0 {
		return 0, nil
	}
	tag, err := db.pool.Exec(ctx, `DELETE FROM saved_leads WHERE place_id = ANY($1)`, placeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leads: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpdateNotes replaces the notes on a saved lead. Returns nil, nil when the lead does not exist.
func (db *DB) UpdateNotes(ctx context.Context, placeID, notes string) (*SavedLead, error) {
	lead, err := scanLead(db.pool.QueryRow(ctx,
		`UPDATE saved_leads SET notes = $2, updated_at = NOW()
		 WHERE place_id = $1
		 RETURNING `+leadColumns,
		placeID, notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}
	return lead, nil
}

// UpdateLeadEmails stores the result of a site scan and stamps emails_scanned_at.
func (db *DB) UpdateLeadEmails(ctx context.Context, placeID string, emails []string) error {
	encoded, err := marshalNullable(emails)
	if err != nil {
		return fmt.Errorf("failed to encode emails: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE saved_leads SET emails = $2, emails_scanned_at = NOW(), updated_at = NOW()
		 WHERE place_id = $1`,
		placeID, encoded,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead emails: %w", err)
	}
	return nil
}
