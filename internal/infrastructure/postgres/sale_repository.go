package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_number, client_id, total_amount, created_by, created_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var createdBy *string
	if err := row.Scan(&s.ID, &s.SaleNumber, &s.ClientID, &s.TotalAmount, &createdBy, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.CreatedBy = emptyIfNull(createdBy)
	return &s, nil
}

// Create persiste la cabecera y sus líneas.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.SaleNumber, s.ClientID, s.TotalAmount, nullIfEmpty(s.CreatedBy), s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, s.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount, it.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.attach(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List ventas más recientes primero, filtradas por rango de created_at.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var where []string
	var args []any
	if filter.Start != nil {
		args = append(args, *filter.Start)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.End != nil {
		args = append(args, *filter.End)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, length(sale_number) DESC, sale_number DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list := []*entity.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	if err := r.attach(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attach carga clientes e ítems (con su producto) de un lote de ventas.
func (r *SaleRepo) attach(ctx context.Context, list []*entity.Sale) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(list))
	ids := make([]string, 0, len(list))
	var clientIDs []string
	for _, s := range list {
		byID[s.ID] = s
		ids = append(ids, s.ID)
		s.Items = []*entity.SaleItem{}
		if s.ClientID != nil {
			clientIDs = append(clientIDs, *s.ClientID)
		}
	}

	clients, err := loadClients(ctx, r.q, clientIDs)
	if err != nil {
		return err
	}
	for _, s := range list {
		if s.ClientID != nil {
			s.Client = clients[*s.ClientID]
		}
	}

	rows, err := r.q.Query(ctx, `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.discount, si.total_price,
		       `+prefixed("p", productColumns)+`
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1)
		ORDER BY si.position`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		var p entity.Product
		var description, category *string
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Discount, &it.TotalPrice,
			&p.ID, &p.Name, &description, &p.SKU, &p.Price, &p.Cost, &p.Stock, &p.MinStock, &category,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		p.Description = emptyIfNull(description)
		p.Category = emptyIfNull(category)
		it.Product = &p
		if s := byID[it.SaleID]; s != nil {
			s.Items = append(s.Items, &it)
		}
	}
	return rows.Err()
}

// prefixed antepone el alias de tabla a una lista de columnas.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}
