package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `p.product_id, p.name, p.description, p.price, p.category_id, p.image_url, p.created_at`

	listProductsQuery = `
		SELECT p.product_id, p.name, p.description, p.price, p.category_id, p.image_url, p.created_at
		FROM products p
		ORDER BY p.product_id
	`
	getProductByIDQuery = `
		SELECT p.product_id, p.name, p.description, p.price, p.category_id, p.image_url, p.created_at
		FROM products p
		WHERE p.product_id = $1
	`
	listByCategoryIDsQuery = `
		SELECT p.product_id, p.name, p.description, p.price, p.category_id, p.image_url, p.created_at
		FROM products p
		WHERE p.category_id = ANY($1::int[])
		ORDER BY p.product_id
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, category_id, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING product_id, created_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	var (
		p         Product
		desc, img sql.NullString
		catID     sql.NullInt64
	)
	err := r.db.QueryRow(getProductByIDQuery, id).
		Scan(&p.ID, &p.Name, &desc, &p.Price, &catID, &img, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	applyNullable(&p, desc, catID, img)
	return p, nil
}

func (r *PostgresRepository) ListByCategoryIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(listByCategoryIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var (
		desc, img sql.NullString
		catID     sql.NullInt64
	)
	if p.Description != nil {
		desc = sql.NullString{String: *p.Description, Valid: true}
	}
	if p.ImageURL != nil {
		img = sql.NullString{String: *p.ImageURL, Valid: true}
	}
	if p.CategoryID != nil {
		catID = sql.NullInt64{Int64: int64(*p.CategoryID), Valid: true}
	}
	err := r.db.QueryRow(insertProductQuery, p.Name, desc, p.Price, catID, img).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Search builds the filter clauses dynamically. The rating sort joins the
// interaction table and orders by the same COALESCE(AVG(rating), 0)
// aggregate the recommendation engine uses, so products without ratings sort
// as zero in a stable position.
func (r *PostgresRepository) Search(params SearchParams) ([]Product, error) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString("SELECT " + productColumns + " FROM products p\n")
	if params.Category != "" {
		sb.WriteString("JOIN categories c ON c.category_id = p.category_id\n")
	}
	if params.SortBy == SortRating {
		sb.WriteString("LEFT JOIN user_interactions ui ON ui.product_id = p.product_id\n")
	}

	conds := []string{}
	if params.Query != "" {
		n := arg(params.Query)
		conds = append(conds, fmt.Sprintf("(p.name ILIKE '%%' || %s || '%%' OR p.description ILIKE '%%' || %s || '%%')", n, n))
	}
	if params.Category != "" {
		conds = append(conds, fmt.Sprintf("lower(c.name) = lower(%s)", arg(params.Category)))
	}
	if params.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price >= %s", arg(*params.MinPrice)))
	}
	if params.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price <= %s", arg(*params.MaxPrice)))
	}
	if len(conds) > 0 {
		sb.WriteString("WHERE " + strings.Join(conds, " AND ") + "\n")
	}

	switch params.SortBy {
	case SortPriceAsc:
		sb.WriteString("ORDER BY p.price ASC, p.product_id\n")
	case SortPriceDesc:
		sb.WriteString("ORDER BY p.price DESC, p.product_id\n")
	case SortRating:
		sb.WriteString("GROUP BY " + productColumns + "\n")
		sb.WriteString("ORDER BY COALESCE(AVG(ui.rating), 0) DESC, p.product_id\n")
	default:
		sb.WriteString("ORDER BY p.product_id\n")
	}

	if params.Limit > 0 {
		sb.WriteString("LIMIT " + arg(params.Limit) + "\n")
	}
	if params.Offset > 0 {
		sb.WriteString("OFFSET " + arg(params.Offset) + "\n")
	}

	rows, err := r.db.Query(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		var (
			p         Product
			desc, img sql.NullString
			catID     sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &desc, &p.Price, &catID, &img, &p.CreatedAt); err != nil {
			return nil, err
		}
		applyNullable(&p, desc, catID, img)
		out = append(out, p)
	}
	return out, rows.Err()
}

func applyNullable(p *Product, desc sql.NullString, catID sql.NullInt64, img sql.NullString) {
	if desc.Valid {
		p.Description = &desc.String
	}
	if catID.Valid {
		v := int(catID.Int64)
		p.CategoryID = &v
	}
	if img.Valid {
		p.ImageURL = &img.String
	}
}
