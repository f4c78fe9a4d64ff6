package category

// Category is a node in the category tree. Root categories have no parent.
type Category struct {
	ID       int    `json:"category_id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parent_category_id,omitempty"`
}
