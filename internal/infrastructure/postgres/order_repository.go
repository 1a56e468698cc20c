package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, client_id, status, description, total_amount,
	signed_at, signed_by, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	var description, signedBy, createdBy *string
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.ClientID, &status, &description, &o.TotalAmount,
		&o.SignedAt, &signedBy, &createdBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	o.Description = emptyIfNull(description)
	o.SignedBy = emptyIfNull(signedBy)
	o.CreatedBy = emptyIfNull(createdBy)
	return &o, nil
}

// Create persiste la cabecera y sus líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, o.ClientID, string(o.Status), nullIfEmpty(o.Description), o.TotalAmount,
		o.SignedAt, nullIfEmpty(o.SignedBy), nullIfEmpty(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, description, quantity, unit_price, discount, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, o.ID, it.ProductID, it.Description, it.Quantity, it.UnitPrice, it.Discount, it.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden: dos cancelaciones concurrentes no reponen stock dos veces.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.attach(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List órdenes más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, length(order_number) DESC, order_number DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.attach(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attach carga clientes e ítems de un lote de órdenes con una consulta por tabla.
func (r *OrderRepo) attach(ctx context.Context, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	clientIDs := make([]string, 0, len(list))
	for _, o := range list {
		byID[o.ID] = o
		ids = append(ids, o.ID)
		clientIDs = append(clientIDs, o.ClientID)
	}

	clients, err := loadClients(ctx, r.q, clientIDs)
	if err != nil {
		return err
	}
	for _, o := range list {
		o.Client = clients[o.ClientID]
		o.Items = []*entity.OrderItem{}
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, description, quantity, unit_price, discount, total_price
		FROM order_items WHERE order_id = ANY($1) ORDER BY position`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.Discount, &it.TotalPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, &it)
		}
	}
	return rows.Err()
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (r *OrderRepo) Sign(ctx context.Context, id, signedBy string, signedAt time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE orders SET signed_at = $2, signed_by = $3, updated_at = $2 WHERE id = $1`,
		id, signedAt, signedBy)
	if err != nil {
		return fmt.Errorf("sign order: %w", err)
	}
	return nil
}

// loadClients devuelve los clientes indexados por ID.
func loadClients(ctx context.Context, q Querier, ids []string) (map[string]*entity.Client, error) {
	out := make(map[string]*entity.Client)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}
