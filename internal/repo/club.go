package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/circlehub/internal/domain"
)

// ClubStore is the Postgres-backed ClubRepo. On top of List it supports the
// writes the import command needs.
type ClubStore interface {
	ClubRepo

	// Upsert inserts club or, when its key already exists, overwrites every
	// field but the id. position fixes the club's place in List order.
	Upsert(ctx context.Context, position int, club domain.Club) (domain.Club, error)

	// DeleteExcept removes every club whose key is not in keys and returns
	// the number of rows removed.
	DeleteExcept(ctx context.Context, keys []string) (int64, error)
}

// clubDetails is the jsonb payload for the nested parts of a club.
type clubDetails struct {
	Activity    domain.ActivityDetails   `json:"activity"`
	Members     domain.MemberComposition `json:"members"`
	Links       domain.ExternalLinks     `json:"links"`
	Recruitment domain.RecruitmentInfo   `json:"recruitment"`
}

// pgClubRepo is the Postgres implementation of ClubStore.
type pgClubRepo struct {
	db db
}

// NewClubRepo constructs a ClubStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests or for an atomic import pass a pgx.Tx.
func NewClubRepo(db db) ClubStore {
	return &pgClubRepo{db: db}
}

const clubColumns = `id, key, name, verified, profile_image, affiliation, tags,
		       details, last_update, secret_description`

// List returns all clubs ordered by position.
func (r *pgClubRepo) List(ctx context.Context) ([]domain.Club, error) {
	const q = `
		SELECT ` + clubColumns + `
		FROM clubs
		ORDER BY position, key`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ClubRepo.List: %w", err)
	}
	defer rows.Close()

	clubs := []domain.Club{}
	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ClubRepo.List: scan: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ClubRepo.List: rows: %w", err)
	}

	return clubs, nil
}

// Upsert writes club keyed by its Key. A new row gets a fresh UUID unless
// club.ID is already set.
func (r *pgClubRepo) Upsert(ctx context.Context, position int, club domain.Club) (domain.Club, error) {
	const q = `
		INSERT INTO clubs (id, key, position, name, verified, profile_image,
		                   affiliation, tags, details, last_update, secret_description)
		VALUES (@id, @key, @position, @name, @verified, @profile_image,
		        @affiliation, @tags, @details, @last_update, @secret_description)
		ON CONFLICT (key) DO UPDATE
		SET position           = EXCLUDED.position,
		    name               = EXCLUDED.name,
		    verified           = EXCLUDED.verified,
		    profile_image      = EXCLUDED.profile_image,
		    affiliation        = EXCLUDED.affiliation,
		    tags               = EXCLUDED.tags,
		    details            = EXCLUDED.details,
		    last_update        = EXCLUDED.last_update,
		    secret_description = EXCLUDED.secret_description,
		    updated_at         = now()
		RETURNING ` + clubColumns

	id := club.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	tags := club.Tags
	if tags == nil {
		tags = []string{} // column is NOT NULL
	}

	args := pgx.NamedArgs{
		"id":                 id,
		"key":                club.Key,
		"position":           position,
		"name":               club.Name,
		"verified":           club.Verified,
		"profile_image":      club.ProfileImage,
		"affiliation":        club.Affiliation,
		"tags":               tags,
		"details":            detailsOf(club),
		"last_update":        club.LastUpdate,
		"secret_description": club.SecretDescription,
	}

	result, err := scanClub(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Club{}, fmt.Errorf("repo.ClubRepo.Upsert: %w", err)
	}
	return result, nil
}

// DeleteExcept removes clubs whose key is absent from keys. An empty keys
// slice removes everything.
func (r *pgClubRepo) DeleteExcept(ctx context.Context, keys []string) (int64, error) {
	const q = `DELETE FROM clubs WHERE NOT (key = ANY(@keys))`

	if keys == nil {
		keys = []string{}
	}
	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"keys": keys})
	if err != nil {
		return 0, fmt.Errorf("repo.ClubRepo.DeleteExcept: %w", err)
	}
	return tag.RowsAffected(), nil
}

func detailsOf(c domain.Club) clubDetails {
	return clubDetails{
		Activity:    c.Activity,
		Members:     c.Members,
		Links:       c.Links,
		Recruitment: c.Recruitment,
	}
}

// scanClub maps a single database row into a domain.Club.
func scanClub(s scanner) (domain.Club, error) {
	var (
		c       domain.Club
		id      pgtype.UUID
		details clubDetails
	)

	err := s.Scan(&id, &c.Key, &c.Name, &c.Verified, &c.ProfileImage, &c.Affiliation,
		&c.Tags, &details, &c.LastUpdate, &c.SecretDescription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Club{}, domain.ErrNotFound
		}
		return domain.Club{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.Activity = details.Activity
	c.Members = details.Members
	c.Links = details.Links
	c.Recruitment = details.Recruitment
	if len(c.Tags) == 0 {
		c.Tags = nil
	}
	return c, nil
}
