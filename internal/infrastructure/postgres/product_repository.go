package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, description, sku, price, cost, stock, min_stock, category, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var description, category *string
	if err := row.Scan(&p.ID, &p.Name, &description, &p.SKU, &p.Price, &p.Cost,
		&p.Stock, &p.MinStock, &category, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = emptyIfNull(description)
	p.Category = emptyIfNull(category)
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullIfEmpty(product.Description), product.SKU, product.Price, product.Cost,
		product.Stock, product.MinStock, nullIfEmpty(product.Category), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update edición absoluta: también fija stock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, sku = $4, price = $5, cost = $6,
		       stock = $7, min_stock = $8, category = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullIfEmpty(product.Description), product.SKU, product.Price, product.Cost,
		product.Stock, product.MinStock, nullIfEmpty(product.Category), product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos con paginación, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	return r.queryProducts(ctx, query, limit, offset)
}

func (r *ProductRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE stock <= min_stock
		ORDER BY stock ASC, lower(name) LIMIT $1`
	return r.queryProducts(ctx, query, limit)
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto. Las FK de sale_items y order_items son RESTRICT.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DecrementStock una sola sentencia condicional: sin lectura previa no hay ventana de carrera.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	if qty <= 0 {
		return false, domain.NewStockQuantityError(qty)
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		id, qty,
	)
	if err != nil {
		if isCheckViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ProductRepo) IncrementStock(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return domain.NewStockQuantityError(qty)
	}
	_, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}
