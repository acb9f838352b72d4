// Package orderrepo persists the order aggregate with gorm: one row in
// orders plus one row per item in order_items.
package orderrepo

import (
	"time"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Items are loaded through Preload ordered by position.
type OrderDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime:false"`
	Status    int            `gorm:"type:smallint;not null"`
	Items     []OrderItemDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is the order_items row. Position keeps the request order.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null"`
	Position    int             `gorm:"not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric;not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	dto := OrderDTO{
		ID:        aggregate.ID().Bytes(),
		CreatedAt: aggregate.CreatedAt(),
		Status:    int(aggregate.Status()),
		Items:     make([]OrderItemDTO, 0, len(items)),
	}

	for position, item := range items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     dto.ID,
			Position:    position,
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := order.RestoreItem(itemID, itemDTO.ProductName, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, dto.CreatedAt, order.Status(dto.Status), items)
}
