package category

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery = `
		SELECT category_id, name, parent_category_id
		FROM categories
		ORDER BY category_id
	`
	getCategoryByIDQuery = `
		SELECT category_id, name, parent_category_id
		FROM categories
		WHERE category_id = $1
	`
	getCategoryByNameQuery = `
		SELECT category_id, name, parent_category_id
		FROM categories
		WHERE lower(name) = lower($1)
	`
	listChildCategoriesQuery = `
		SELECT category_id, name, parent_category_id
		FROM categories
		WHERE parent_category_id = $1
		ORDER BY category_id
	`
	insertCategoryQuery = `
		INSERT INTO categories (name, parent_category_id)
		VALUES ($1, $2)
		RETURNING category_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	return scanCategory(r.db.QueryRow(getCategoryByIDQuery, id))
}

func (r *PostgresRepository) GetByName(name string) (Category, error) {
	return scanCategory(r.db.QueryRow(getCategoryByNameQuery, name))
}

func (r *PostgresRepository) ListChildren(parentID int) ([]Category, error) {
	rows, err := r.db.Query(listChildCategoriesQuery, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *PostgresRepository) Create(c Category) (Category, error) {
	var parent sql.NullInt64
	if c.ParentID != nil {
		parent = sql.NullInt64{Int64: int64(*c.ParentID), Valid: true}
	}
	if err := r.db.QueryRow(insertCategoryQuery, c.Name, parent).Scan(&c.ID); err != nil {
		return Category{}, err
	}
	return c, nil
}

func scanCategory(row *sql.Row) (Category, error) {
	var (
		c      Category
		parent sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.Name, &parent)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, err
	}
	if parent.Valid {
		v := int(parent.Int64)
		c.ParentID = &v
	}
	return c, nil
}

func scanCategories(rows *sql.Rows) ([]Category, error) {
	out := make([]Category, 0)
	for rows.Next() {
		var (
			c      Category
			parent sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &parent); err != nil {
			return nil, err
		}
		if parent.Valid {
			v := int(parent.Int64)
			c.ParentID = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
