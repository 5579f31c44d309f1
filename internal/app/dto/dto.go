package dto

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Снимок каталога ============

// CatalogSnapshot is a read-only copy of the whole catalog tree.
type CatalogSnapshot struct {
	Categories []CategoryNode `json:"categories"`
}

type CategoryNode struct {
	ID            uint              `json:"id"`
	Name          string            `json:"name"`
	ImageRef      string            `json:"image_ref"`
	Subcategories []SubcategoryNode `json:"subcategories"`
}

type SubcategoryNode struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	Services []ServiceNode `json:"services"`
}

type ServiceNode struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Available   bool          `json:"available"`
	Description string        `json:"description"`
	ImageRef    string        `json:"image_ref"`
	Variants    []VariantNode `json:"variants"`
}

type VariantNode struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Unit      string `json:"unit"`
	Available bool   `json:"available"`
}

// ============ Формы админки ============

type NameForm struct {
	Name string `form:"name"`
}

type ServiceForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Available   string `form:"available"`
}

// VariantForm uses pointers so that update can tell a missing field from an empty one.
type VariantForm struct {
	Name      *string `form:"name"`
	Price     *string `form:"price"`
	Unit      *string `form:"unit"`
	Available string  `form:"available"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type ClosedMessageForm struct {
	Message string `form:"message"`
}

// Checked reports whether an HTML checkbox value was submitted as on.
func Checked(v string) bool {
	return v == "on"
}
