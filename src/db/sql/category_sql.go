package db

import (
	"context"
	"errors"
	"fmt"

	cache "fintrack-server/src/db"

	"fintrack-server/src/core"
	"fintrack-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, name, description, color, icon, created_at`

const allCategoriesCacheKey = "categories:all"

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func CreateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (name, description, color, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns
	created, err := scanCategory(pool.QueryRow(ctx, query, category.Name, category.Description, category.Color, category.Icon))
	if err != nil {
		return nil, err
	}
	cache.ClearAllCategoryCaches()
	return created, nil
}

func GetCategoryByID(ctx context.Context, pool *pgxpool.Pool, categoryID int64) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategory(pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %d", core.ErrNotFound, categoryID)
		}
		return nil, err
	}
	return category, nil
}

// GetAllCategories serves the shared category list, cached until the next
// category write.
func GetAllCategories(ctx context.Context, pool *pgxpool.Pool) ([]models.Category, error) {
	if cached, found := cache.Cache.Get(allCategoriesCacheKey); found {
		if categories, ok := cached.([]models.Category); ok {
			return categories, nil
		}
	}

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cache.SetCategoryCache(allCategoriesCacheKey, categories)
	return categories, nil
}

func UpdateCategory(ctx context.Context, pool *pgxpool.Pool, category *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET name = $1, description = $2, color = $3, icon = $4
		WHERE id = $5
		RETURNING ` + categoryColumns
	updated, err := scanCategory(pool.QueryRow(ctx, query,
		category.Name, category.Description, category.Color, category.Icon, category.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %d", core.ErrNotFound, category.ID)
		}
		return nil, err
	}
	cache.ClearAllCategoryCaches()
	return updated, nil
}

func DeleteCategory(ctx context.Context, pool *pgxpool.Pool, categoryID int64) error {
	cmd, err := pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %d", core.ErrNotFound, categoryID)
	}
	cache.ClearAllCategoryCaches()
	return nil
}
