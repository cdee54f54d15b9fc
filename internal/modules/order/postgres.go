package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/pizza-pos/internal/modules/pricing"
	"github.com/georgemunganga/pizza-pos/internal/money"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// EnsureSchema creates the completed_orders table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS completed_orders (
		  id             BIGINT PRIMARY KEY,
		  ticket_number  TEXT NOT NULL,
		  customer_phone TEXT NOT NULL,
		  customer       JSONB NOT NULL,
		  lines          JSONB NOT NULL,
		  subtotal       BIGINT NOT NULL,
		  tax            NUMERIC NOT NULL,
		  total          NUMERIC NOT NULL,
		  status         TEXT NOT NULL,
		  created_at     TIMESTAMPTZ NOT NULL,
		  updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

const selectOrder = `SELECT id,ticket_number,customer,lines,subtotal,tax,total,status,created_at FROM completed_orders`

func (r *postgresRepo) Create(ctx context.Context, o *CompletedOrder) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return err
	}
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO completed_orders
		  (id, ticket_number, customer_phone, customer, lines, subtotal, tax, total, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID.Int64(), o.TicketNumber, o.Customer.Phone, customer, lines,
		int64(o.Totals.Subtotal), o.Totals.Tax.String(), o.Totals.Total.String(),
		string(o.Status), o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert completed order: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id snowflake.ID) (*CompletedOrder, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE id=$1`, id.Int64()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *postgresRepo) ListByPhone(ctx context.Context, phone string) ([]*CompletedOrder, error) {
	return r.queryOrders(ctx, selectOrder+` WHERE customer_phone=$1 ORDER BY id DESC`, phone)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, statuses ...OrderStatus) ([]*CompletedOrder, error) {
	if len(statuses) == 0 {
		return r.queryOrders(ctx, selectOrder+` ORDER BY id DESC`)
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return r.queryOrders(ctx, selectOrder+` WHERE status = ANY($1) ORDER BY id DESC`, pq.Array(names))
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id snowflake.ID, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE completed_orders SET status=$1, updated_at=$2 WHERE id=$3`,
		string(status), time.Now(), id.Int64())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// customerDirectory folds completed_orders into one row per phone number. The
// name and addresses come from the newest order first.
const customerDirectory = `
	WITH customers AS (
	  SELECT customer_phone AS phone,
	         (array_agg(customer->>'name' ORDER BY id DESC))[1] AS name,
	         array_agg(COALESCE(customer->>'address', '') ORDER BY id DESC) AS addresses,
	         COUNT(*) FILTER (WHERE status <> 'cancelled') AS order_count,
	         COALESCE(SUM(total) FILTER (WHERE status <> 'cancelled'), 0) AS total_spent,
	         MAX(id) AS last_order_id,
	         MAX(created_at) AS last_order_at
	  FROM completed_orders
	  GROUP BY customer_phone
	)
	SELECT phone,name,addresses,order_count,total_spent,last_order_id,last_order_at FROM customers`

func (r *postgresRepo) SearchCustomers(ctx context.Context, q string) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, customerDirectory+`
	WHERE $1 = '' OR strpos(phone, $1) > 0 OR strpos(lower(name), lower($1)) > 0
	ORDER BY last_order_id DESC`, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresRepo) GetCustomer(ctx context.Context, phone string) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, customerDirectory+` WHERE phone=$1`, phone))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	return c, err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scanner) (*CompletedOrder, error) {
	var (
		id              int64
		customer, lines []byte
		subtotal        int64
		tax, total      string
		status          string
		o               CompletedOrder
	)
	if err := row.Scan(&id, &o.TicketNumber, &customer, &lines, &subtotal, &tax, &total, &status, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, fmt.Errorf("decode lines: %w", err)
	}
	taxD, err := decimal.NewFromString(strings.TrimSpace(tax))
	if err != nil {
		return nil, fmt.Errorf("decode tax: %w", err)
	}
	totalD, err := decimal.NewFromString(strings.TrimSpace(total))
	if err != nil {
		return nil, fmt.Errorf("decode total: %w", err)
	}
	o.ID = snowflake.ID(id)
	o.Totals = pricing.Totals{Subtotal: money.Amount(subtotal), Tax: taxD, Total: totalD}
	o.Status = OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	return &o, nil
}

func scanCustomer(row scanner) (*Customer, error) {
	var (
		c         Customer
		addresses []string
		spent     string
		lastID    int64
	)
	if err := row.Scan(&c.Phone, &c.Name, pq.Array(&addresses), &c.OrderCount, &spent, &lastID, &c.LastOrderAt); err != nil {
		return nil, err
	}
	total, err := decimal.NewFromString(strings.TrimSpace(spent))
	if err != nil {
		return nil, fmt.Errorf("decode total spent: %w", err)
	}
	c.Addresses = []string{}
	for _, a := range addresses {
		c.Addresses = addAddress(c.Addresses, a)
	}
	c.TotalSpent = total
	c.LastOrderID = snowflake.ID(lastID)
	c.LastOrderAt = c.LastOrderAt.UTC()
	return &c, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*CompletedOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*CompletedOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
