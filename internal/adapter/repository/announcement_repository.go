package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const announcementSelect = `
	SELECT an.id, an.title, an.content, an.block_id, an.priority, an.author_id::text, an.created_at,
		COALESCE(u.first_name || ' ' || u.last_name, ''), b.name
	FROM announcements an
	JOIN blocks b ON b.id = an.block_id
	LEFT JOIN users u ON u.id = an.author_id`

// PostgresAnnouncementRepository implementa announcement.Repository usando PostgreSQL
type PostgresAnnouncementRepository struct {
	db *database.PostgresDB
}

// NewPostgresAnnouncementRepository cria uma nova instância de PostgresAnnouncementRepository
func NewPostgresAnnouncementRepository(db *database.PostgresDB) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{db: db}
}

// Create implementa announcement.Repository.Create
func (r *PostgresAnnouncementRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	_, err := r.db.Pool().Exec(ctx, `
		INSERT INTO announcements (id, title, content, block_id, priority, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Title, a.Content, a.BlockID, string(a.Priority), nullString(a.AuthorID), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir anúncio: %w", err)
	}
	return nil
}

// FindByID implementa announcement.Repository.FindByID
func (r *PostgresAnnouncementRepository) FindByID(ctx context.Context, id string) (*announcement.Announcement, error) {
	a, err := scanAnnouncement(r.db.Pool().QueryRow(ctx, announcementSelect+" WHERE an.id = $1", id))
	if err != nil {
		if isNotFound(err) {
			return nil, announcement.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar anúncio: %w", err)
	}
	return a, nil
}

// List implementa announcement.Repository.List
func (r *PostgresAnnouncementRepository) List(ctx context.Context, filter announcement.Filter) ([]*announcement.Announcement, error) {
	var w where
	w.eq("an.block_id", filter.BlockID)
	w.eq("b.association_id", filter.AssociationID)

	rows, err := r.db.Pool().Query(ctx, announcementSelect+w.String()+" ORDER BY an.created_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar anúncios: %w", err)
	}
	defer rows.Close()

	var list []*announcement.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler anúncio: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAnnouncement(row pgx.Row) (*announcement.Announcement, error) {
	a := &announcement.Announcement{}
	var priority string
	var authorID *string
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.BlockID, &priority, &authorID, &a.CreatedAt,
		&a.AuthorName, &a.BlockName,
	)
	if err != nil {
		return nil, err
	}
	a.Priority = announcement.Priority(priority)
	a.AuthorID = stringValue(authorID)
	return a, nil
}
