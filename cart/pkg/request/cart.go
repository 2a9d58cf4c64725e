package request

type AddItem struct {
	ProductId int64 `validate:"required,gt=0" json:"productId"`
}

type UpdateQuantity struct {
	Quantity *int32 `validate:"required" json:"quantity"`
}
