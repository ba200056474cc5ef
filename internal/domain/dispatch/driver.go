package dispatch

import (
	"strings"
	"time"

	"github.com/jaymarand/ovgi-dispatch/internal/domain/shared"
)

// Driver is a reference entity for a truck driver available for runs.
type Driver struct {
	shared.BaseEntity

	Name   string
	Active bool
}

// TableName specifies the database table name
func (Driver) TableName() string {
	return "drivers"
}

// NewDriver creates a driver reference row.
func NewDriver(name string) (*Driver, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Driver name is required")
	}

	return &Driver{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Active:     true,
	}, nil
}

// SetActive toggles whether the driver can be assigned to new runs.
func (d *Driver) SetActive(active bool) {
	d.Active = active
	d.UpdatedAt = time.Now()
}
