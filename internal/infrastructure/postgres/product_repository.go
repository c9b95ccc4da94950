package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/anbar/anbar-api/internal/domain"
	"github.com/anbar/anbar-api/internal/domain/entity"
	"github.com/anbar/anbar-api/internal/domain/repository"
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

const productColumns = `id, name, code, barcode, article, description, unit, category_id, type, brand, model,
	color, size, weight, country, manufacturer, warranty_period, production_date, expiry_date,
	purchase_price, sale_price, min_stock, max_stock, tax_rate, is_active, created_at, updated_at`

func productFields(p *entity.Product) []any {
	return []any{
		&p.ID, &p.Name, &p.Code, &p.Barcode, &p.Article, &p.Description, &p.Unit, &p.CategoryID,
		&p.Type, &p.Brand, &p.Model, &p.Color, &p.Size, &p.Weight, &p.Country, &p.Manufacturer,
		&p.WarrantyPeriod, &p.ProductionDate, &p.ExpiryDate, &p.PurchasePrice, &p.SalePrice,
		&p.MinStock, &p.MaxStock, &p.TaxRate, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	}
}

func productValues(p *entity.Product) []any {
	return []any{
		p.Name, p.Code, p.Barcode, p.Article, p.Description, p.Unit, p.CategoryID,
		p.Type, p.Brand, p.Model, p.Color, p.Size, p.Weight, p.Country, p.Manufacturer,
		p.WarrantyPeriod, p.ProductionDate, p.ExpiryDate, p.PurchasePrice, p.SalePrice,
		p.MinStock, p.MaxStock, p.TaxRate, p.IsActive,
	}
}

func mapProductWriteErr(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s product: %w", op, err)
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, code, barcode, article, description, unit, category_id, type, brand, model,
			color, size, weight, country, manufacturer, warranty_period, production_date, expiry_date,
			purchase_price, sale_price, min_stock, max_stock, tax_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, productValues(product)...).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return mapProductWriteErr("insert", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(productFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update reemplaza todos los campos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, code = $3, barcode = $4, article = $5, description = $6, unit = $7,
			category_id = $8, type = $9, brand = $10, model = $11, color = $12, size = $13, weight = $14,
			country = $15, manufacturer = $16, warranty_period = $17, production_date = $18, expiry_date = $19,
			purchase_price = $20, sale_price = $21, min_stock = $22, max_stock = $23, tax_rate = $24,
			is_active = $25, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	args := append([]any{product.ID}, productValues(product)...)
	err := r.q.QueryRow(ctx, query, args...).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapProductWriteErr("update", err)
	}
	return nil
}

// Delete elimina un producto; su fila de almacén cae en cascada y las líneas de factura quedan sin producto.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos filtrados con paginación y total.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var where []string
	var args []any
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d OR barcode ILIKE $%d)", n, n, n))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if len(f.IDs) > 0 {
		args = append(args, f.IDs)
		where = append(where, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, limitArg(f.Limit), f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		productColumns, cond, len(args)-1, len(args))
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve todo el catálogo en el orden de listado.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(productFields(&p)...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// MoveToCategory cambia la categoría de varios productos en una sola sentencia.
func (r *ProductRepo) MoveToCategory(ctx context.Context, ids []int64, categoryID *int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET category_id = $2, updated_at = now() WHERE id = ANY($1)`,
		ids, categoryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("move products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre la tabla warehouse.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create inserta la fila de almacén del producto.
func (r *StockRepo) Create(ctx context.Context, productID int64, quantity decimal.Decimal) (*entity.Stock, error) {
	s := entity.Stock{ProductID: productID, Quantity: quantity}
	err := r.q.QueryRow(ctx,
		`INSERT INTO warehouse (product_id, quantity) VALUES ($1, $2) RETURNING id, updated_at`,
		productID, quantity,
	).Scan(&s.ID, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert stock: %w", err)
	}
	return &s, nil
}

const stockSelect = `SELECT w.id, w.product_id, w.quantity, w.updated_at, ` + prefixedProductColumns + `
	FROM warehouse w JOIN products p ON p.id = w.product_id`

const prefixedProductColumns = `p.id, p.name, p.code, p.barcode, p.article, p.description, p.unit, p.category_id,
	p.type, p.brand, p.model, p.color, p.size, p.weight, p.country, p.manufacturer, p.warranty_period,
	p.production_date, p.expiry_date, p.purchase_price, p.sale_price, p.min_stock, p.max_stock, p.tax_rate,
	p.is_active, p.created_at, p.updated_at`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	var p entity.Product
	dest := append([]any{&s.ID, &s.ProductID, &s.Quantity, &s.UpdatedAt}, productFields(&p)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	s.Product = &p
	return &s, nil
}

func (r *StockRepo) getOne(ctx context.Context, where string, arg int64) (*entity.Stock, error) {
	s, err := scanStock(r.q.QueryRow(ctx, stockSelect+" WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetByID obtiene una fila de almacén por ID.
func (r *StockRepo) GetByID(ctx context.Context, id int64) (*entity.Stock, error) {
	return r.getOne(ctx, "w.id = $1", id)
}

// GetByProduct obtiene la fila de almacén del producto.
func (r *StockRepo) GetByProduct(ctx context.Context, productID int64) (*entity.Stock, error) {
	return r.getOne(ctx, "w.product_id = $1", productID)
}

// List devuelve todas las filas con su producto.
func (r *StockRepo) List(ctx context.Context) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, stockSelect+" ORDER BY w.id")
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SetQuantity fija la existencia de una fila.
func (r *StockRepo) SetQuantity(ctx context.Context, id int64, quantity decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE warehouse SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddQuantity suma delta a la existencia del producto, creando la fila si no existe.
func (r *StockRepo) AddQuantity(ctx context.Context, productID int64, delta decimal.Decimal) error {
	query := `
		INSERT INTO warehouse (product_id, quantity) VALUES ($1, $2)
		ON CONFLICT (product_id) DO UPDATE
		SET quantity = warehouse.quantity + EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, productID, delta); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("add stock: %w", err)
	}
	return nil
}
