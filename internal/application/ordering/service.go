package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/order"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

// ErrTargetNotCustomer rejects staff orders aimed at non-customer accounts.
var ErrTargetNotCustomer = errors.New("orders can only be created for customer accounts")

// EventPublisher pushes order events out after a successful commit.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, evt order.Event) error
}

// Service runs the ordering workflows. Every mutation happens inside one
// transaction through the unit of work; reads go through the plain repository.
type Service struct {
	uow       repository.UnitOfWork
	orders    repository.OrderRepository
	publisher EventPublisher
	log       logger.Logger
}

func NewService(uow repository.UnitOfWork, orders repository.OrderRepository, publisher EventPublisher, log logger.Logger) *Service {
	return &Service{uow: uow, orders: orders, publisher: publisher, log: log}
}

// Line is one requested (product, quantity) pair of a staff-created order.
type Line struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// LineRejection records why one line of a staff-created order was skipped.
type LineRejection struct {
	Index     int    `json:"index"`
	ProductID int64  `json:"product_id"`
	Reason    string `json:"reason"`
}

// CreateResult carries the created order together with the lines that did
// not make it in.
type CreateResult struct {
	Order      *order.Order    `json:"order"`
	Rejections []LineRejection `json:"rejections,omitempty"`
}

// PlaceOrder is the customer purchase: one product, one quantity. All checks
// run before any write; on success the order, its item and the stock
// decrement commit as one transaction.
func (s *Service) PlaceOrder(ctx context.Context, principal account.Principal, productID int64, quantity int) (*order.Order, error) {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.PlaceOwnOrders {
		return nil, account.ErrForbidden
	}
	if quantity <= 0 {
		return nil, order.ErrInvalidQuantity
	}

	var placed *order.Order
	err := s.uow.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		product, err := r.Products.FindByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		if product == nil {
			return catalog.ErrProductNotFound
		}
		if product.Stock < quantity {
			return order.ErrInsufficientStock
		}

		user, err := r.Users.FindByID(ctx, principal.UserID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if user == nil {
			return account.ErrUnauthorizedPrincipal
		}

		item, err := order.NewItem(product.ID, quantity, product.Price)
		if err != nil {
			return err
		}
		placed, err = order.NewOrder(user.ID, []order.Item{item})
		if err != nil {
			return err
		}

		product.Stock -= quantity
		touch(product)
		if err := r.Products.Update(ctx, product); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		if err := r.Orders.Create(ctx, placed); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.EventOrderPlaced, placed)
	return placed, nil
}

// CreateOrder is the staff-side multi-line creation. Lines are validated
// independently: non-positive quantities are skipped silently, missing
// products and short stock become per-line rejections. Stock decrements are
// buffered against the loaded product entities and only written once at
// least one line survived.
func (s *Service) CreateOrder(ctx context.Context, principal account.Principal, customerID int64, lines []Line) (*CreateResult, error) {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageOrders {
		return nil, account.ErrForbidden
	}

	result := &CreateResult{}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		target, err := r.Users.FindByID(ctx, customerID)
		if err != nil {
			return fmt.Errorf("load customer: %w", err)
		}
		if target == nil {
			return account.ErrUserNotFound
		}
		if target.Role != account.RoleCustomer {
			return ErrTargetNotCustomer
		}

		loaded := make(map[int64]*catalog.Product)
		decremented := make(map[int64]bool)
		var touched []*catalog.Product
		var items []order.Item

		for i, line := range lines {
			if line.Quantity <= 0 {
				continue
			}

			product, ok := loaded[line.ProductID]
			if !ok {
				product, err = r.Products.FindByID(ctx, line.ProductID)
				if err != nil {
					return fmt.Errorf("load product %d: %w", line.ProductID, err)
				}
				if product != nil {
					loaded[line.ProductID] = product
				}
			}
			if product == nil {
				result.Rejections = append(result.Rejections, LineRejection{
					Index:     i,
					ProductID: line.ProductID,
					Reason:    "product not found",
				})
				continue
			}
			// The buffered entity already reflects earlier accepted lines,
			// so duplicate products are checked against remaining stock.
			if product.Stock < line.Quantity {
				result.Rejections = append(result.Rejections, LineRejection{
					Index:     i,
					ProductID: line.ProductID,
					Reason:    "insufficient stock",
				})
				continue
			}

			item, err := order.NewItem(product.ID, line.Quantity, product.Price)
			if err != nil {
				return err
			}
			if !decremented[product.ID] {
				decremented[product.ID] = true
				touched = append(touched, product)
			}
			product.Stock -= line.Quantity
			items = append(items, item)
		}

		if len(items) == 0 {
			return order.ErrNoValidItems
		}

		for _, product := range touched {
			touch(product)
			if err := r.Products.Update(ctx, product); err != nil {
				return fmt.Errorf("update stock: %w", err)
			}
		}

		created, err := order.NewOrder(target.ID, items)
		if err != nil {
			return err
		}
		if err := r.Orders.Create(ctx, created); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		result.Order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.EventOrderPlaced, result.Order)
	return result, nil
}

// ChangeStatus moves an order along the allowed transition graph. A stale
// version surfaces repository.ErrConcurrencyConflict; the caller reloads and
// retries.
func (s *Service) ChangeStatus(ctx context.Context, principal account.Principal, orderID int64, next order.Status) (*order.Order, error) {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageOrders {
		return nil, account.ErrForbidden
	}

	var updated *order.Order
	err := s.uow.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		o, err := r.Orders.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if o == nil {
			return order.ErrOrderNotFound
		}
		if !o.Status.CanTransitionTo(next) {
			return order.ErrInvalidTransition
		}

		o.Status = next
		if err := r.Orders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.EventStatusChanged, updated)
	return updated, nil
}

// DeleteOrder removes an order and its items. Orders still in the pipeline
// (pending or processing) hand their quantities back to product stock first;
// terminal orders do not.
func (s *Service) DeleteOrder(ctx context.Context, principal account.Principal, orderID int64) error {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageOrders {
		return account.ErrForbidden
	}

	var deleted *order.Order
	err := s.uow.WithinTx(ctx, func(ctx context.Context, r repository.Repositories) error {
		o, err := r.Orders.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("load order: %w", err)
		}
		if o == nil {
			return order.ErrOrderNotFound
		}

		if !o.Status.IsTerminal() {
			for _, item := range o.Items {
				product, err := r.Products.FindByID(ctx, item.ProductID)
				if err != nil {
					return fmt.Errorf("load product %d: %w", item.ProductID, err)
				}
				if product == nil {
					// Product removed since the order was placed; nothing to
					// restore onto.
					continue
				}
				product.Stock += item.Quantity
				touch(product)
				if err := r.Products.Update(ctx, product); err != nil {
					return fmt.Errorf("restore stock: %w", err)
				}
			}
		}

		if err := r.Orders.Delete(ctx, o.ID); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		deleted = o
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, order.EventOrderDeleted, deleted)
	return nil
}

// GetOrder returns one order. Staff see any order, customers only their own.
func (s *Service) GetOrder(ctx context.Context, principal account.Principal, orderID int64) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}

	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageOrders && o.UserID != principal.UserID {
		return nil, account.ErrForbidden
	}
	return o, nil
}

// ListOrders returns all orders, newest first. Staff only.
func (s *Service) ListOrders(ctx context.Context, principal account.Principal) ([]order.Order, error) {
	caps := account.CapabilitiesFor(principal.Role)
	if !caps.ManageOrders {
		return nil, account.ErrForbidden
	}
	return s.orders.List(ctx)
}

// RecentOrders returns the principal's own orders, newest first.
func (s *Service) RecentOrders(ctx context.Context, principal account.Principal, limit int) ([]order.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.orders.ListByUser(ctx, principal.UserID, limit)
}

func (s *Service) publish(ctx context.Context, typ order.EventType, o *order.Order) {
	if s.publisher == nil || o == nil {
		return
	}
	evt := order.Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		Total:      o.Total,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, evt); err != nil {
		s.log.Warn("publish order event failed",
			logger.Error(err),
			logger.Int64("order_id", o.ID),
			logger.String("type", string(typ)),
		)
	}
}

func touch(p *catalog.Product) {
	now := time.Now().UTC()
	p.UpdatedAt = &now
}
