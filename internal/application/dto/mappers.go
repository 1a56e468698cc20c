package dto

import "github.com/jhoicas/Backoffice-api/internal/domain/entity"

// NewProductResponse convierte la entidad en su DTO de salida.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Category:    p.Category,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewClientResponse(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Document:  c.Document,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			TotalPrice:  it.TotalPrice,
		})
	}
	return &OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		ClientID:    o.ClientID,
		Client:      NewClientResponse(o.Client),
		Status:      string(o.Status),
		Description: o.Description,
		TotalAmount: o.TotalAmount,
		Items:       items,
		SignedAt:    o.SignedAt,
		SignedBy:    o.SignedBy,
		CreatedBy:   o.CreatedBy,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func NewSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		item := SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Discount:   it.Discount,
			TotalPrice: it.TotalPrice,
		}
		if it.Product != nil {
			item.ProductName = it.Product.Name
		}
		items = append(items, item)
	}
	return &SaleResponse{
		ID:          s.ID,
		SaleNumber:  s.SaleNumber,
		ClientID:    s.ClientID,
		Client:      NewClientResponse(s.Client),
		TotalAmount: s.TotalAmount,
		Items:       items,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
}

// NewUserResponse nunca expone PasswordHash.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
