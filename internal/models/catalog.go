package models

// Product is a catalog entry.
type Product struct {
	ID       string  `json:"id"`
	StoreID  string  `json:"store_id"`
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount,omitempty"`
	Stock    int     `json:"stock"`
	Category string  `json:"category,omitempty"`
}

// Store is a seller storefront.
type Store struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Logo     string    `json:"logo,omitempty"`
	Location *GeoPoint `json:"location,omitempty"`
}

// Category is one node of the category tree in flat form.
// ParentID nil means root; a dangling parent id is rendered as a root.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// ProductsResponse is the envelope for GET /products.
type ProductsResponse struct {
	Products []Product `json:"products"`
}

// StoresResponse is the envelope for GET /stores.
type StoresResponse struct {
	Stores []Store `json:"stores"`
}

// CategoriesResponse is the envelope for GET /categories.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}
