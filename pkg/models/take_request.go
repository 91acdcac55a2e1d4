package models

// TakeRequest is the body of POST /api/items-take. The _id key on the
// item entries matches what the Angular client has always sent.
type TakeRequest struct {
	ToLocation int               `json:"toLocation" binding:"required"`
	Items      []TakeItemRequest `json:"items" binding:"required,min=1,dive"`
}

type TakeItemRequest struct {
	ID       int `json:"_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// ReturnRequest is the body of POST /api/item-return. One call settles
// a single unit of the item at the given location.
type ReturnRequest struct {
	Location int `json:"location" binding:"required"`
	Item     int `json:"item" binding:"required"`
}
