package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/corray333/cafe-order/internal/dal/postgres"
	"github.com/corray333/cafe-order/internal/service/models/order"
)

// OrderDal represents the order data access layer model. Monetary columns are
// numeric(10,2) scanned as text and parsed into decimals.
type OrderDal struct {
	Id                    int64      `db:"id"`
	OrderNumber           string     `db:"order_number"`
	CustomerId            int64      `db:"customer_id"`
	Status                string     `db:"status"`
	OrderType             string     `db:"order_type"`
	PaymentMethod         string     `db:"payment_method"`
	PaymentStatus         string     `db:"payment_status"`
	Subtotal              string     `db:"subtotal"`
	Tax                   string     `db:"tax"`
	DeliveryFee           string     `db:"delivery_fee"`
	Discount              string     `db:"discount"`
	Total                 string     `db:"total"`
	LoyaltyPointsRedeemed int        `db:"loyalty_points_redeemed"`
	LoyaltyPointsEarned   int        `db:"loyalty_points_earned"`
	Notes                 string     `db:"notes"`
	DeliveryAddress       string     `db:"delivery_address"`
	EstimatedTime         *time.Time `db:"estimated_time"`
	CompletedAt           *time.Time `db:"completed_at"`
	CancelledAt           *time.Time `db:"cancelled_at"`
	CancelReason          string     `db:"cancel_reason"`
	ProcessedBy           *int64     `db:"processed_by"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	subtotal, err := decimal.NewFromString(o.Subtotal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subtotal: %w", err)
	}
	tax, err := decimal.NewFromString(o.Tax)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tax: %w", err)
	}
	deliveryFee, err := decimal.NewFromString(o.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("failed to parse delivery fee: %w", err)
	}
	discount, err := decimal.NewFromString(o.Discount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse discount: %w", err)
	}
	total, err := decimal.NewFromString(o.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total: %w", err)
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	orderType, err := order.ParseOrderType(o.OrderType)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.ParsePaymentMethod(o.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                    o.Id,
		OrderNumber:           o.OrderNumber,
		CustomerID:            o.CustomerId,
		Items:                 []order.LineItem{}, // Will be populated separately
		Status:                status,
		OrderType:             orderType,
		PaymentMethod:         paymentMethod,
		PaymentStatus:         order.PaymentStatus(o.PaymentStatus),
		Subtotal:              subtotal,
		Tax:                   tax,
		DeliveryFee:           deliveryFee,
		Discount:              discount,
		Total:                 total,
		LoyaltyPointsRedeemed: o.LoyaltyPointsRedeemed,
		LoyaltyPointsEarned:   o.LoyaltyPointsEarned,
		Notes:                 o.Notes,
		DeliveryAddress:       o.DeliveryAddress,
		EstimatedTime:         o.EstimatedTime,
		CompletedAt:           o.CompletedAt,
		CancelledAt:           o.CancelledAt,
		CancelReason:          o.CancelReason,
		ProcessedBy:           o.ProcessedBy,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}, nil
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

var orderColumns = []string{
	"id",
	"order_number",
	"customer_id",
	"status",
	"order_type",
	"payment_method",
	"payment_status",
	"subtotal::text",
	"tax::text",
	"delivery_fee::text",
	"discount::text",
	"total::text",
	"loyalty_points_redeemed",
	"loyalty_points_earned",
	"notes",
	"delivery_address",
	"estimated_time",
	"completed_at",
	"cancelled_at",
	"cancel_reason",
	"processed_by",
	"created_at",
	"updated_at",
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderNumber,
		&dal.CustomerId,
		&dal.Status,
		&dal.OrderType,
		&dal.PaymentMethod,
		&dal.PaymentStatus,
		&dal.Subtotal,
		&dal.Tax,
		&dal.DeliveryFee,
		&dal.Discount,
		&dal.Total,
		&dal.LoyaltyPointsRedeemed,
		&dal.LoyaltyPointsEarned,
		&dal.Notes,
		&dal.DeliveryAddress,
		&dal.EstimatedTime,
		&dal.CompletedAt,
		&dal.CancelledAt,
		&dal.CancelReason,
		&dal.ProcessedBy,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert persists the order row and its line items, returning the order with
// generated identifiers.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o *order.Order) (*order.Order, error) {
	query, args, err := sq.Insert("orders").
		Columns(
			"order_number",
			"customer_id",
			"status",
			"order_type",
			"payment_method",
			"payment_status",
			"subtotal",
			"tax",
			"delivery_fee",
			"discount",
			"total",
			"loyalty_points_redeemed",
			"loyalty_points_earned",
			"notes",
			"delivery_address",
			"estimated_time",
			"created_at",
			"updated_at",
		).
		Values(
			o.OrderNumber,
			o.CustomerID,
			o.Status.String(),
			o.OrderType.String(),
			o.PaymentMethod.String(),
			o.PaymentStatus.String(),
			o.Subtotal.StringFixed(2),
			o.Tax.StringFixed(2),
			o.DeliveryFee.StringFixed(2),
			o.Discount.StringFixed(2),
			o.Total.StringFixed(2),
			o.LoyaltyPointsRedeemed,
			o.LoyaltyPointsEarned,
			o.Notes,
			o.DeliveryAddress,
			o.EstimatedTime,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := r.insertLineItem(ctx, &o.Items[i]); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (r *PostgresOrderRepository) insertLineItem(ctx context.Context, item *order.LineItem) error {
	customizations, err := json.Marshal(item.Customizations)
	if err != nil {
		return fmt.Errorf("failed to marshal line item customizations: %w", err)
	}

	query, args, err := sq.Insert("order_items").
		Columns(
			"order_id",
			"menu_item_id",
			"name",
			"unit_price",
			"quantity",
			"customizations",
			"subtotal",
		).
		Values(
			item.OrderID,
			item.MenuItemID,
			item.Name,
			item.UnitPrice.StringFixed(2),
			item.Quantity,
			customizations,
			item.Subtotal.StringFixed(2),
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build line item insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("failed to insert line item: %w", err)
	}

	return nil
}

func (r *PostgresOrderRepository) find(ctx context.Context, id int64, forUpdate bool) (*order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order query: %w", err)
	}

	model, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.lineItems(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	model.Items = items

	return model, nil
}

// FindByID fetches an order with its line items.
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	return r.find(ctx, id, false)
}

// FindByIDForUpdate fetches an order and locks the row until the surrounding
// transaction ends.
func (r *PostgresOrderRepository) FindByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.find(ctx, id, true)
}

func (r *PostgresOrderRepository) lineItems(ctx context.Context, orderID int64) ([]order.LineItem, error) {
	query, args, err := sq.Select(
		"id",
		"order_id",
		"menu_item_id",
		"name",
		"unit_price::text",
		"quantity",
		"customizations",
		"subtotal::text",
	).
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build line items query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var result []order.LineItem
	for rows.Next() {
		var (
			item           order.LineItem
			unitPrice      string
			subtotal       string
			customizations []byte
		)
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.MenuItemID,
			&item.Name,
			&unitPrice,
			&item.Quantity,
			&customizations,
			&subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}

		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("failed to parse line item unit price: %w", err)
		}
		if item.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("failed to parse line item subtotal: %w", err)
		}
		if len(customizations) > 0 {
			if err := json.Unmarshal(customizations, &item.Customizations); err != nil {
				return nil, fmt.Errorf("failed to unmarshal line item customizations: %w", err)
			}
		}

		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update persists mutable order fields after a status transition or
// cancellation. Line items and totals are immutable once inserted; totals are
// written anyway so the row always mirrors the model.
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	query, args, err := sq.Update("orders").
		Set("status", o.Status.String()).
		Set("payment_status", o.PaymentStatus.String()).
		Set("total", o.Total.StringFixed(2)).
		Set("estimated_time", o.EstimatedTime).
		Set("completed_at", o.CompletedAt).
		Set("cancelled_at", o.CancelledAt).
		Set("cancel_reason", o.CancelReason).
		Set("processed_by", o.ProcessedBy).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return nil
}

// Query retrieves orders matching the filter, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	for i := range result {
		items, err := r.lineItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}

	return result, nil
}

// CountCreatedOn returns the number of orders created on the given day. Order
// numbering calls this on the same transaction as the insert.
func (r *PostgresOrderRepository) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	query, args, err := sq.Select("COUNT(*)").
		From("orders").
		Where(sq.GtOrEq{"created_at": start}).
		Where(sq.Lt{"created_at": end}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build order count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}
