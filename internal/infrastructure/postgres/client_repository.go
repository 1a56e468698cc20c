package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, email, phone, document, address, city, state, zip_code, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var email, phone, document, address, city, st, zip *string
	if err := row.Scan(&c.ID, &c.Name, &email, &phone, &document, &address, &city, &st, &zip,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Email = emptyIfNull(email)
	c.Phone = emptyIfNull(phone)
	c.Document = emptyIfNull(document)
	c.Address = emptyIfNull(address)
	c.City = emptyIfNull(city)
	c.State = emptyIfNull(st)
	c.ZipCode = emptyIfNull(zip)
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Document),
		nullIfEmpty(c.Address), nullIfEmpty(c.City), nullIfEmpty(c.State), nullIfEmpty(c.ZipCode),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// Update actualiza un cliente existente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, email = $3, phone = $4, document = $5, address = $6,
		       city = $7, state = $8, zip_code = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Document),
		nullIfEmpty(c.Address), nullIfEmpty(c.City), nullIfEmpty(c.State), nullIfEmpty(c.ZipCode),
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// List lista clientes por nombre con paginación.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY lower(name), id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	list := []*entity.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
