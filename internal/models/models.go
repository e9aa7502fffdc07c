package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"type:text;not null;index"`
	Address      string    `gorm:"type:text;not null;default:''"`
	ContactPhone string    `gorm:"type:text;not null;default:''"`

	// Кэш координат: NULL до первого успешного геокодирования
	Lon *float64 `gorm:"type:double precision"`
	Lat *float64 `gorm:"type:double precision"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	MenuItems []RestaurantMenuItem `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

func (Restaurant) TableName() string { return "restaurants" }

// HasCoordinates reports whether the geocode cache is populated.
func (r *Restaurant) HasCoordinates() bool { return r.Lon != nil && r.Lat != nil }

type ProductCategory struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:text;not null;uniqueIndex"`
}

func (ProductCategory) TableName() string { return "product_categories" }

type Product struct {
	ID            uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string           `gorm:"type:text;not null;index"`
	CategoryID    *uuid.UUID       `gorm:"type:uuid;index"`
	Category      *ProductCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Price         decimal.Decimal  `gorm:"type:numeric(8,2);not null"`
	Image         string           `gorm:"type:text;not null;default:''"`
	SpecialStatus bool             `gorm:"not null;default:false;index"`
	Description   string           `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Product) TableName() string { return "products" }

type RestaurantMenuItem struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_menu_items_restaurant_product"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_menu_items_restaurant_product"`
	Product      *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Availability bool      `gorm:"not null;default:true;index"`
	UpdatedAt    time.Time `gorm:"not null;default:now()"`
}

func (RestaurantMenuItem) TableName() string { return "restaurant_menu_items" }

type OrderStatus string

const (
	OrderStatusNotProcessed OrderStatus = "not_processed"
	OrderStatusCooking      OrderStatus = "cooking"
	OrderStatusOnWay        OrderStatus = "on_way"
	OrderStatusDelivered    OrderStatus = "delivered"
)

var statusOrder = []OrderStatus{
	OrderStatusNotProcessed,
	OrderStatusCooking,
	OrderStatusOnWay,
	OrderStatusDelivered,
}

// Rank is the position of the status in the lifecycle, -1 when unknown.
func (s OrderStatus) Rank() int {
	for i, st := range statusOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool { return s.Rank() >= 0 }

// Next returns the only status reachable from s.
func (s OrderStatus) Next() (OrderStatus, bool) {
	r := s.Rank()
	if r < 0 || r == len(statusOrder)-1 {
		return "", false
	}
	return statusOrder[r+1], true
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentOnline:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName   string        `gorm:"column:firstname;type:text;not null"`
	LastName    string        `gorm:"column:lastname;type:text;not null"`
	PhoneNumber string        `gorm:"column:phonenumber;type:text;not null;index"`
	Address     string        `gorm:"type:text;not null"`
	Status      OrderStatus   `gorm:"type:text;not null;default:'not_processed';index"`
	Payment     PaymentMethod `gorm:"type:text;not null;default:'cash';index"`
	Comment     string        `gorm:"type:text;not null;default:''"`

	PreparingRestaurantID *uuid.UUID  `gorm:"type:uuid;index"`
	PreparingRestaurant   *Restaurant `gorm:"foreignKey:PreparingRestaurantID;constraint:OnDelete:SET NULL"`

	RegisteredAt time.Time  `gorm:"not null;default:now();index"`
	ProcessedAt  *time.Time
	DeliveredAt  *time.Time

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items      []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Candidates []CandidateDistance `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// TotalPrice sums the locked line prices. It is never stored.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// ProductIDs returns the distinct products of the order.
func (o *Order) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}

type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_product"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int32           `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(8,2);not null"` // цена на момент заказа

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt32(it.Quantity))
}

type CandidateDistance struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:ux_candidates_order_restaurant"`
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:ux_candidates_order_restaurant"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`

	// NULL: вне радиуса или адрес ресторана не найден
	DistanceMeters *float64 `gorm:"type:double precision"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (CandidateDistance) TableName() string { return "candidate_distances" }

// WithinRadius reports whether the candidate has a usable distance.
func (c CandidateDistance) WithinRadius() bool { return c.DistanceMeters != nil }
