package items

// ItemRequest is the body of POST /api/item and PUT /api/item/:id.
// Updates overwrite every field; there is no partial update.
type ItemRequest struct {
	ItemType        string  `json:"itemType" binding:"required"`
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     *string `json:"description"`
	Quantity        int     `json:"quantity" binding:"omitempty,gte=1"`
	DefaultLocation int     `json:"defaultLocation" binding:"required"`
}

func (req *ItemRequest) EffectiveQuantity() int {
	if req.Quantity == 0 {
		return 1
	}
	return req.Quantity
}
