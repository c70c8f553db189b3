package entity

import "time"

// Dataset es el estado completo de una cuenta: las cuatro colecciones más el
// perfil de la tienda. Es el documento que viaja entero entre memoria, el
// archivo local y el almacén remoto; los nombres JSON son el formato de
// intercambio del cliente histórico.
//
// Las colecciones mantienen orden de inserción inverso-cronológico: agregar
// siempre antepone, de modo que el elemento más nuevo queda primero.
type Dataset struct {
	Vehicles     []Vehicle    `json:"vehicles"`
	Customers    []Customer   `json:"customers"`
	Sales        []Sale       `json:"sales"`
	Expenses     []Expense    `json:"expenses"`
	StoreProfile StoreProfile `json:"storeProfile"`
	LastUpdated  Timestamp    `json:"lastUpdated"`
}

// NewDataset construye el estado inicial vacío de una cuenta recién creada.
func NewDataset(owner User) *Dataset {
	return &Dataset{
		Vehicles:     []Vehicle{},
		Customers:    []Customer{},
		Sales:        []Sale{},
		Expenses:     []Expense{},
		StoreProfile: DefaultStoreProfile(owner.StoreName, owner.Email),
	}
}

// Clone devuelve una copia profunda (las colecciones se copian, los elementos
// son valores). Los lectores reciben clones para que el escritor único pueda
// seguir mutando sin carreras.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		Vehicles:     make([]Vehicle, len(d.Vehicles)),
		Customers:    make([]Customer, len(d.Customers)),
		Sales:        make([]Sale, len(d.Sales)),
		Expenses:     make([]Expense, len(d.Expenses)),
		StoreProfile: d.StoreProfile,
		LastUpdated:  d.LastUpdated,
	}
	copy(c.Vehicles, d.Vehicles)
	copy(c.Customers, d.Customers)
	copy(c.Sales, d.Sales)
	copy(c.Expenses, d.Expenses)
	return c
}

// FindVehicle resuelve una referencia de vehículo. nil cuando cuelga.
func (d *Dataset) FindVehicle(id string) *Vehicle {
	for i := range d.Vehicles {
		if d.Vehicles[i].ID == id {
			return &d.Vehicles[i]
		}
	}
	return nil
}

// FindCustomer resuelve una referencia de cliente. nil cuando cuelga.
func (d *Dataset) FindCustomer(id string) *Customer {
	for i := range d.Customers {
		if d.Customers[i].ID == id {
			return &d.Customers[i]
		}
	}
	return nil
}

// ── Mutaciones de colección ───────────────────────────────────────────────────

// AddVehicle antepone un vehículo (el más nuevo primero).
func (d *Dataset) AddVehicle(v Vehicle) {
	d.Vehicles = append([]Vehicle{v}, d.Vehicles...)
}

// UpdateVehicle reemplaza el vehículo con el mismo ID. false si no existe.
func (d *Dataset) UpdateVehicle(v Vehicle) bool {
	for i := range d.Vehicles {
		if d.Vehicles[i].ID == v.ID {
			d.Vehicles[i] = v
			return true
		}
	}
	return false
}

// RemoveVehicle elimina por ID. false si no existe.
func (d *Dataset) RemoveVehicle(id string) bool {
	for i := range d.Vehicles {
		if d.Vehicles[i].ID == id {
			d.Vehicles = append(d.Vehicles[:i], d.Vehicles[i+1:]...)
			return true
		}
	}
	return false
}

// AddCustomer antepone un cliente.
func (d *Dataset) AddCustomer(c Customer) {
	d.Customers = append([]Customer{c}, d.Customers...)
}

// UpdateCustomer reemplaza el cliente con el mismo ID. false si no existe.
func (d *Dataset) UpdateCustomer(c Customer) bool {
	for i := range d.Customers {
		if d.Customers[i].ID == c.ID {
			d.Customers[i] = c
			return true
		}
	}
	return false
}

// RemoveCustomer elimina por ID. false si no existe.
func (d *Dataset) RemoveCustomer(id string) bool {
	for i := range d.Customers {
		if d.Customers[i].ID == id {
			d.Customers = append(d.Customers[:i], d.Customers[i+1:]...)
			return true
		}
	}
	return false
}

// AddSale registra la venta y, en la misma mutación lógica, marca el vehículo
// referenciado como "Vendido" y congela la utilidad (salePrice − pricePurchase
// del vehículo en este instante). Si la referencia cuelga la venta se acepta
// igual con la utilidad que traiga el llamador.
func (d *Dataset) AddSale(s Sale) {
	if v := d.FindVehicle(s.VehicleID); v != nil {
		s.Profit = s.SalePrice.Sub(v.PricePurchase)
		v.Status = VehicleSold
	}
	d.Sales = append([]Sale{s}, d.Sales...)
}

// RemoveSale elimina por ID. No revierte el estado del vehículo.
func (d *Dataset) RemoveSale(id string) bool {
	for i := range d.Sales {
		if d.Sales[i].ID == id {
			d.Sales = append(d.Sales[:i], d.Sales[i+1:]...)
			return true
		}
	}
	return false
}

// AddExpense antepone un gasto.
func (d *Dataset) AddExpense(e Expense) {
	d.Expenses = append([]Expense{e}, d.Expenses...)
}

// RemoveExpense elimina por ID. false si no existe.
func (d *Dataset) RemoveExpense(id string) bool {
	for i := range d.Expenses {
		if d.Expenses[i].ID == id {
			d.Expenses = append(d.Expenses[:i], d.Expenses[i+1:]...)
			return true
		}
	}
	return false
}

// SetStoreProfile reemplaza el perfil completo.
func (d *Dataset) SetStoreProfile(p StoreProfile) {
	d.StoreProfile = p
}

// Touch actualiza la marca de última modificación.
func (d *Dataset) Touch(now time.Time) {
	d.LastUpdated = NewTimestamp(now)
}

// ── Parche de persistencia ────────────────────────────────────────────────────

// DatasetPatch describe las colecciones tocadas por una mutación. El backend
// remoto hace upsert-merge de solo estos campos; el local persiste el bundle
// completo de todos modos. Un puntero nil significa "sin cambios".
type DatasetPatch struct {
	Vehicles     *[]Vehicle    `json:"vehicles,omitempty"`
	Customers    *[]Customer   `json:"customers,omitempty"`
	Sales        *[]Sale       `json:"sales,omitempty"`
	Expenses     *[]Expense    `json:"expenses,omitempty"`
	StoreProfile *StoreProfile `json:"storeProfile,omitempty"`
	LastUpdated  Timestamp     `json:"lastUpdated"`
}

// Apply vuelca el parche sobre el dataset: cada colección presente reemplaza
// a la actual por completo (sin merge a nivel de campo).
func (p DatasetPatch) Apply(d *Dataset) {
	if p.Vehicles != nil {
		d.Vehicles = *p.Vehicles
	}
	if p.Customers != nil {
		d.Customers = *p.Customers
	}
	if p.Sales != nil {
		d.Sales = *p.Sales
	}
	if p.Expenses != nil {
		d.Expenses = *p.Expenses
	}
	if p.StoreProfile != nil {
		d.StoreProfile = *p.StoreProfile
	}
	if !p.LastUpdated.IsZero() {
		d.LastUpdated = p.LastUpdated
	}
}
