package shipping

import (
	"fmt"
	"os"

	"github.com/guttosm/fulfillment-console/internal/domain/model"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCourier = model.CourierUSPS
	DefaultService = "first-class"
)

// CourierMenu is the list of services offered by one courier.
//
// @Description Courier with its service menu
type CourierMenu struct {
	Courier  model.Courier         `json:"courier" yaml:"courier" example:"USPS"`
	Services []model.ServiceOption `json:"services" yaml:"services"`
}

type catalogFile struct {
	Couriers []CourierMenu `yaml:"couriers"`
}

// Catalog maps couriers to the services an operator may pick.
type Catalog struct {
	menus []CourierMenu
}

// DefaultCatalog returns the built-in courier menus.
func DefaultCatalog() *Catalog {
	return &Catalog{menus: []CourierMenu{
		{Courier: model.CourierUSPS, Services: []model.ServiceOption{
			{Code: "first-class", Label: "First Class"},
			{Code: "priority", Label: "Priority Mail"},
			{Code: "ground-advantage", Label: "Ground Advantage"},
		}},
		{Courier: model.CourierUPS, Services: []model.ServiceOption{
			{Code: "ground", Label: "Ground"},
			{Code: "2day", Label: "2nd Day Air"},
		}},
		{Courier: model.CourierFedEx, Services: []model.ServiceOption{
			{Code: "ground", Label: "Ground"},
			{Code: "overnight", Label: "Overnight"},
		}},
		{Courier: model.CourierOther, Services: []model.ServiceOption{
			{Code: "custom", Label: "Custom Service"},
		}},
	}}
}

// LoadCatalog reads courier menus from a YAML file.
// Couriers missing from the file keep an empty menu.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read courier catalog: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes a YAML courier catalog.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse courier catalog: %w", err)
	}

	seen := make(map[model.Courier]bool, len(f.Couriers))
	menus := make([]CourierMenu, 0, len(f.Couriers))
	for _, m := range f.Couriers {
		c, ok := model.ParseCourier(string(m.Courier))
		if !ok {
			return nil, fmt.Errorf("parse courier catalog: unknown courier %q", m.Courier)
		}
		if seen[c] {
			return nil, fmt.Errorf("parse courier catalog: duplicate courier %q", c)
		}
		seen[c] = true
		for _, s := range m.Services {
			if s.Code == "" {
				return nil, fmt.Errorf("parse courier catalog: empty service code for %q", c)
			}
		}
		menus = append(menus, CourierMenu{Courier: c, Services: m.Services})
	}
	if len(menus) == 0 {
		return nil, fmt.Errorf("parse courier catalog: no couriers defined")
	}
	return &Catalog{menus: menus}, nil
}

// Menus returns every courier menu in catalog order.
func (c *Catalog) Menus() []CourierMenu {
	out := make([]CourierMenu, len(c.menus))
	for i, m := range c.menus {
		out[i] = CourierMenu{Courier: m.Courier, Services: append([]model.ServiceOption(nil), m.Services...)}
	}
	return out
}

// Services returns the menu of a courier.
func (c *Catalog) Services(courier model.Courier) []model.ServiceOption {
	for _, m := range c.menus {
		if m.Courier == courier {
			return append([]model.ServiceOption(nil), m.Services...)
		}
	}
	return nil
}

// HasCourier reports whether the courier is in the catalog.
func (c *Catalog) HasCourier(courier model.Courier) bool {
	for _, m := range c.menus {
		if m.Courier == courier {
			return true
		}
	}
	return false
}

// HasService reports whether code is on the courier's menu.
func (c *Catalog) HasService(courier model.Courier, code string) bool {
	for _, s := range c.Services(courier) {
		if s.Code == code {
			return true
		}
	}
	return false
}

// defaults returns the initial courier and service of a batch.
func (c *Catalog) defaults() (model.Courier, string) {
	courier := DefaultCourier
	if !c.HasCourier(courier) {
		courier = c.menus[0].Courier
	}
	if c.HasService(courier, DefaultService) {
		return courier, DefaultService
	}
	if s := c.Services(courier); len(s) > 0 {
		return courier, s[0].Code
	}
	return courier, ""
}
