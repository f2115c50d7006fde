package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/massfitdev/massfit-bot/internal/basket"
	"github.com/massfitdev/massfit-bot/pkg/db"
	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// Service exposes checkout and order lifecycle operations.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) (*models.Order, error)
	SetGroupMessageID(ctx context.Context, orderID int64, messageID int) error
	GetByID(ctx context.Context, orderID int64) (*models.Order, error)
}

// PlaceOrderInput captures the checkout choices confirmed by the user.
type PlaceOrderInput struct {
	UserID       int64
	DeliveryType enums.DeliveryType
	BranchID     *int64
	Address      *string
	Latitude     *float64
	Longitude    *float64
}

type service struct {
	repo     *Repository
	baskets  *basket.Repository
	dbClient *db.Client
}

// NewService constructs the orders service.
func NewService(repo *Repository, baskets *basket.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if baskets == nil {
		return nil, fmt.Errorf("basket repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, baskets: baskets, dbClient: dbClient}, nil
}

// Place snapshots the user's basket into an order. The order rows, the item
// snapshots, and the basket wipe commit or roll back together.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if !input.DeliveryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery type")
	}
	if input.DeliveryType == enums.DeliveryTypePickup && input.BranchID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup order requires a branch")
	}

	var placed *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.repo.WithTx(tx)
		txBaskets := s.baskets.WithTx(tx)

		items, err := txBaskets.ItemsWithProducts(ctx, input.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load basket")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "basket is empty")
		}

		total := decimal.Zero
		snapshots := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "basket references a removed product")
			}
			line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(line)
			snapshots = append(snapshots, models.OrderItem{
				ProductID:    item.ProductID,
				ProductName:  item.Product.Name,
				ProductPrice: item.Product.Price,
				Quantity:     item.Quantity,
			})
		}

		order := &models.Order{
			UserID:            input.UserID,
			TotalPrice:        total,
			Status:            enums.OrderStatusWaiting,
			DeliveryType:      input.DeliveryType,
			BranchID:          input.BranchID,
			DeliveryAddress:   input.Address,
			DeliveryLatitude:  input.Latitude,
			DeliveryLongitude: input.Longitude,
		}
		if _, err := txOrders.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		for i := range snapshots {
			snapshots[i].OrderID = order.ID
		}
		if err := txOrders.CreateItems(ctx, snapshots); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order items")
		}

		if err := txBaskets.Clear(ctx, input.UserID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear basket")
		}

		order.Items = snapshots
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// UpdateStatus applies a waiting -> delivered/cancelled transition exactly
// once. A repeat click gets a STATE_CONFLICT instead of a second write.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders only transition to delivered or cancelled")
	}

	moved, err := s.repo.TransitionFromWaiting(ctx, orderID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
	}
	if !moved {
		order, err := s.repo.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return order, pkgerrors.New(pkgerrors.CodeStateConflict, "order already resolved")
	}
	return s.repo.FindByID(ctx, orderID)
}

func (s *service) SetGroupMessageID(ctx context.Context, orderID int64, messageID int) error {
	return s.repo.SetGroupMessageID(ctx, orderID, messageID)
}

func (s *service) GetByID(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}
