package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/items-api/internal/model"
	"github.com/tuanvumaihuynh/items-api/internal/storage/db"
)

// ErrItemNotFound is returned when no row matches the requested id.
var ErrItemNotFound = errors.New("item not found")

const itemColumns = "id, name, description, price, created_at"

type CreateItemParams struct {
	Name        string
	Description string
	Price       float64
}

// UpdateItemParams holds the fields to change. Nil fields keep their stored value.
// ClearDescription sets the description to NULL.
type UpdateItemParams struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Price            *float64
}

type ItemRepository interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	GetItem(ctx context.Context, id int64) (model.Item, error)
	CreateItem(ctx context.Context, params CreateItemParams) (model.Item, error)
	UpdateItem(ctx context.Context, id int64, params UpdateItemParams) (model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type itemRepository struct {
	db db.DB
}

func NewItemRepository(db db.DB) ItemRepository {
	return &itemRepository{db: db}
}

type itemRow struct {
	ID          int64            `db:"id"`
	Name        string           `db:"name"`
	Description pgtype.Text      `db:"description"`
	Price       pgtype.Numeric   `db:"price"`
	CreatedAt   pgtype.Timestamp `db:"created_at"`
}

func (r itemRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	itemRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[itemRow])
	if err != nil {
		return nil, fmt.Errorf("collect items: %w", err)
	}

	items := make([]model.Item, 0, len(itemRows))
	for _, row := range itemRows {
		item, err := itemRowToModelItem(row)
		if err != nil {
			return nil, fmt.Errorf("convert item row to model item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r itemRepository) GetItem(ctx context.Context, id int64) (model.Item, error) {
	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	if err != nil {
		return model.Item{}, fmt.Errorf("query item: %w", err)
	}

	return collectOneItem(rows)
}

func (r itemRepository) CreateItem(ctx context.Context, params CreateItemParams) (model.Item, error) {
	price, err := toNumeric(params.Price)
	if err != nil {
		return model.Item{}, err
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO items (name, description, price)
		VALUES (@name, @description, @price)
		RETURNING `+itemColumns,
		pgx.NamedArgs{
			"name":        params.Name,
			"description": params.Description,
			"price":       price,
		})
	if err != nil {
		return model.Item{}, fmt.Errorf("insert item: %w", err)
	}

	return collectOneItem(rows)
}

func (r itemRepository) UpdateItem(ctx context.Context, id int64, params UpdateItemParams) (model.Item, error) {
	var price pgtype.Numeric
	if params.Price != nil {
		var err error
		if price, err = toNumeric(*params.Price); err != nil {
			return model.Item{}, err
		}
	}

	rows, err := r.db.Query(ctx, `
		UPDATE items
		SET
			name        = COALESCE(@name, name),
			description = CASE WHEN @clear_description::boolean THEN NULL
				ELSE COALESCE(@description, description) END,
			price       = COALESCE(@price, price)
		WHERE id = @id
		RETURNING `+itemColumns,
		pgx.NamedArgs{
			"id":                id,
			"name":              params.Name,
			"description":       params.Description,
			"clear_description": params.ClearDescription,
			"price":             price,
		})
	if err != nil {
		return model.Item{}, fmt.Errorf("update item: %w", err)
	}

	return collectOneItem(rows)
}

func (r itemRepository) DeleteItem(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

func collectOneItem(rows pgx.Rows) (model.Item, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[itemRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, ErrItemNotFound
		}
		return model.Item{}, fmt.Errorf("collect item: %w", err)
	}

	return itemRowToModelItem(row)
}

func toNumeric(v float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		return n, fmt.Errorf("scan price: %w", err)
	}
	return n, nil
}

func itemRowToModelItem(row itemRow) (model.Item, error) {
	var price float64
	if row.Price.Valid {
		f, err := row.Price.Float64Value()
		if err != nil {
			return model.Item{}, fmt.Errorf("convert price to float64: %w", err)
		}
		price = f.Float64
	}

	return model.Item{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		Price:       price,
		CreatedAt:   row.CreatedAt.Time,
	}, nil
}
