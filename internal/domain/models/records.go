package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format used on every record. Range queries
// compare these strings lexicographically, inclusive on both ends.
const DateLayout = "2006-01-02"

const (
	// BagPrice is the selling price of one sachet bag in naira. Sale revenue
	// is frozen at creation time using the price in effect then; changing
	// this constant never rewrites stored revenue.
	BagPrice = 400

	// LowStockThreshold marks a resource as low stock when its quantity
	// drops below this value. Low stock is derived, never stored.
	LowStockThreshold = 100
)

// RevenueFor computes the revenue for a number of bags sold at the current
// unit price.
func RevenueFor(bagsSold int) float64 {
	return float64(bagsSold) * BagPrice
}

// ValidDate reports whether value is a well-formed YYYY-MM-DD calendar day.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// Production is one day's sachet output. Append-only: never mutated or
// deleted after creation.
type Production struct {
	ID           string    `bson:"_id" json:"id"`
	Date         string    `bson:"date" json:"date"`
	BagsProduced int       `bson:"bags_produced" json:"bags_produced"`
	StaffID      string    `bson:"staff_id" json:"staff_id"`
	StaffName    string    `bson:"staff_name,omitempty" json:"staff_name,omitempty"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// RecordDate returns the calendar day the record belongs to.
func (p Production) RecordDate() string { return p.Date }

// Validate checks the fields a caller supplies on creation.
func (p Production) Validate() error {
	if !ValidDate(p.Date) {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if p.BagsProduced < 0 {
		return &ValidationError{Field: "bags_produced", Reason: "must not be negative"}
	}
	return nil
}

// Sale is one sales transaction. Revenue is computed once at creation from
// BagsSold and the unit price in effect then, and stored immutably.
type Sale struct {
	ID           string    `bson:"_id" json:"id"`
	Date         string    `bson:"date" json:"date"`
	BagsSold     int       `bson:"bags_sold" json:"bags_sold"`
	Revenue      float64   `bson:"revenue" json:"revenue"`
	CustomerName string    `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	StaffID      string    `bson:"staff_id" json:"staff_id"`
	StaffName    string    `bson:"staff_name,omitempty" json:"staff_name,omitempty"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func (s Sale) RecordDate() string { return s.Date }

func (s Sale) Validate() error {
	if !ValidDate(s.Date) {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if s.BagsSold < 0 {
		return &ValidationError{Field: "bags_sold", Reason: "must not be negative"}
	}
	return nil
}

// Expense is one operating expense. Append-only.
type Expense struct {
	ID          string    `bson:"_id" json:"id"`
	Date        string    `bson:"date" json:"date"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Amount      float64   `bson:"amount" json:"amount"`
	StaffID     string    `bson:"staff_id" json:"staff_id"`
	StaffName   string    `bson:"staff_name,omitempty" json:"staff_name,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

func (e Expense) RecordDate() string { return e.Date }

func (e Expense) Validate() error {
	if !ValidDate(e.Date) {
		return &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(e.Category) == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if e.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return nil
}

// ResourceCategory is the closed set of consumable categories.
type ResourceCategory string

const (
	ResourceNylon    ResourceCategory = "nylon"
	ResourceChemical ResourceCategory = "chemical"
	ResourceFuel     ResourceCategory = "fuel"
	ResourceOther    ResourceCategory = "other"
)

// ParseResourceCategory maps a stored category string onto the closed set.
func ParseResourceCategory(value string) (ResourceCategory, bool) {
	switch ResourceCategory(value) {
	case ResourceNylon, ResourceChemical, ResourceFuel, ResourceOther:
		return ResourceCategory(value), true
	default:
		return "", false
	}
}

// Resource is a consumable inventory item. Mutable via restock/adjustment
// updates and deletable, unlike the append-only ledgers.
type Resource struct {
	ID            string           `bson:"_id" json:"id"`
	Name          string           `bson:"name" json:"name"`
	Category      ResourceCategory `bson:"category" json:"category"`
	Quantity      float64          `bson:"quantity" json:"quantity"`
	Unit          string           `bson:"unit" json:"unit"`
	CostPerUnit   float64          `bson:"cost_per_unit" json:"cost_per_unit"`
	LastRestocked string           `bson:"last_restocked" json:"last_restocked"`
	CreatedAt     time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `bson:"updated_at" json:"updated_at"`
}

// LowStock reports whether the item is below the restock threshold.
func (r Resource) LowStock() bool {
	return r.Quantity < LowStockThreshold
}

func (r Resource) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, ok := ParseResourceCategory(string(r.Category)); !ok {
		return &ValidationError{Field: "category", Reason: "must be one of nylon, chemical, fuel, other"}
	}
	if r.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if r.CostPerUnit < 0 {
		return &ValidationError{Field: "cost_per_unit", Reason: "must not be negative"}
	}
	if r.LastRestocked != "" && !ValidDate(r.LastRestocked) {
		return &ValidationError{Field: "last_restocked", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}

// ResourcePatch carries the fields an update may change. Nil fields are
// left untouched.
type ResourcePatch struct {
	Name          *string  `json:"name,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Quantity      *float64 `json:"quantity,omitempty"`
	Unit          *string  `json:"unit,omitempty"`
	CostPerUnit   *float64 `json:"cost_per_unit,omitempty"`
	LastRestocked *string  `json:"last_restocked,omitempty"`
}

// Validate checks only the fields present in the patch.
func (p ResourcePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Category != nil {
		if _, ok := ParseResourceCategory(*p.Category); !ok {
			return &ValidationError{Field: "category", Reason: "must be one of nylon, chemical, fuel, other"}
		}
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if p.CostPerUnit != nil && *p.CostPerUnit < 0 {
		return &ValidationError{Field: "cost_per_unit", Reason: "must not be negative"}
	}
	if p.LastRestocked != nil && !ValidDate(*p.LastRestocked) {
		return &ValidationError{Field: "last_restocked", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}

// Apply merges the patch into the resource.
func (p ResourcePatch) Apply(r *Resource) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Category != nil {
		r.Category = ResourceCategory(*p.Category)
	}
	if p.Quantity != nil {
		r.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		r.Unit = *p.Unit
	}
	if p.CostPerUnit != nil {
		r.CostPerUnit = *p.CostPerUnit
	}
	if p.LastRestocked != nil {
		r.LastRestocked = *p.LastRestocked
	}
}
